package json

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/drakos74/free-segment/internal/storage"
)

const (
	filename = "%d.events.log"
)

// Logger appends json lines to a log file per key.
type Logger struct {
	root string
	path string
}

func NewLogger(root, folder string) *Logger {
	if root == "" {
		root = storage.DefaultDir
	}
	return &Logger{root: root, path: folder}
}

func (l *Logger) filePath(k storage.K) string {
	return filepath.Join(l.root, storage.RegistryDir, l.path, k.Name, k.Label)
}

func (l *Logger) Store(k storage.Key, value interface{}) error {
	key := storage.K{
		Name:  k.Name,
		Label: k.Label,
	}
	if err := key.Validate(); err != nil {
		return err
	}
	filePath := l.filePath(key)

	if err := ensureDir(filePath); err != nil {
		return err
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode value '%+v': %w", value, err)
	}
	f, err := os.OpenFile(filepath.Join(filePath, fmt.Sprintf(filename, k.Hash)), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer f.Close()

	if _, err = f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("could not write log file for '%+v': %w", k, err)
	}
	return nil
}

// Load reads the raw log file contents into the given string pointer.
func (l Logger) Load(k storage.Key, value interface{}) error {
	s, ok := value.(*string)
	if !ok {
		return fmt.Errorf("only string references are allowed for this: %T", value)
	}

	fileName := filepath.Join(l.filePath(storage.K{
		Name:  k.Name,
		Label: k.Label,
	}), fmt.Sprintf(filename, k.Hash))

	b, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("could not find file '%s': %w", fileName, storage.NotFoundErr)
		}
		return fmt.Errorf("could not read file '%s': %w", fileName, err)
	}
	*s = string(b)
	return nil
}

// Registry is a file backed append only event log.
type Registry struct {
	hash   int64
	logger *Logger
}

// NewEventRegistry creates a registry under <root>/registry/<path>.
func NewEventRegistry(root, path string) *Registry {
	return &Registry{
		hash:   time.Now().Unix(),
		logger: NewLogger(root, path),
	}
}

// EventRegistry creates a new registry generator
func EventRegistry(root, parent string) storage.EventRegistry {
	return func(p string) (storage.Registry, error) {
		if p == "" {
			return NewEventRegistry(root, parent), nil
		}
		return NewEventRegistry(root, filepath.Join(parent, p)), nil
	}
}

func (e *Registry) Add(key storage.K, value interface{}) error {
	k := storage.Key{
		Hash:  e.hash,
		Name:  key.Name,
		Label: key.Label,
	}
	return e.logger.Store(k, value)
}

// GetAll decodes all events for the key into the given slice pointer.
// Log files are read in hash order.
func (e *Registry) GetAll(key storage.K, values interface{}) error {
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("only accepting slice pointers as placeholder for the results: %T", values)
	}
	slice := rv.Elem()
	t := slice.Type().Elem()
	if err := key.Validate(); err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(e.logger.filePath(key), "*.events.log"))
	if err != nil {
		return fmt.Errorf("could not list events: %w", err)
	}
	hashes := make([]int64, 0, len(files))
	for _, f := range files {
		var hash int64
		if _, err := fmt.Sscanf(filepath.Base(f), filename, &hash); err != nil {
			return fmt.Errorf("non-numeric file '%s' found for hash: %w", f, err)
		}
		hashes = append(hashes, hash)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	elems := reflect.MakeSlice(slice.Type(), 0, 10)
	for _, hash := range hashes {
		var ss string
		err := e.logger.Load(storage.Key{
			Hash:  hash,
			Name:  key.Name,
			Label: key.Label,
		}, &ss)
		if err != nil {
			return fmt.Errorf("could not load key '%+v': %w", key, err)
		}
		scanner := bufio.NewScanner(bytes.NewBufferString(ss))
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			instance := reflect.New(t)
			if err := json.Unmarshal([]byte(line), instance.Interface()); err != nil {
				return fmt.Errorf("could not decode event value '%+v': %w", line, err)
			}
			elems = reflect.Append(elems, instance.Elem())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("could not scan events: %w", err)
		}
	}
	slice.Set(elems)
	return nil
}
