package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/free-segment/internal/storage"
	"github.com/rs/zerolog/log"
)

// BlobStorage stores every value as a single json file under <root>/<table>/<shard>.
type BlobStorage struct {
	root  string
	table string
	shard string
}

// BlobShard creates a shard generator for the given root and table.
func BlobShard(root, table string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewJsonBlob(root, table, shard), nil
	}
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	if err := k.Validate(); err != nil {
		return err
	}
	p := filepath.Join(s.root, s.table, s.shard)
	err := Save(p, k.Path(), value)
	if err == nil {
		log.Debug().Str("path", p).Str("file", k.Path()).Msg("stored json file")
	}
	return err
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	if err := k.Validate(); err != nil {
		return err
	}
	return Load(filepath.Join(s.root, s.table, s.shard), k.Path(), value)
}

// NewJsonBlob creates a new file storage.
// table has the same schema
// shard is a logical split
func NewJsonBlob(root, table, shard string) *BlobStorage {
	if root == "" {
		root = storage.DefaultDir
	}
	return &BlobStorage{
		root:  root,
		table: table,
		shard: shard,
	}
}

func ensureDir(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s", filePath)
	}
	return nil
}

// Save saves the given json struct into the given path with the provided filename.
func Save(filePath string, fileName string, value interface{}) error {
	if err := ensureDir(filePath); err != nil {
		return err
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode value for '%s': %w", fileName, err)
	}

	p := filepath.Join(filePath, fmt.Sprintf("%s.json", fileName))
	if err := os.WriteFile(p, b, 0600); err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}
	return nil
}

// Load loads the payload from the given filePath and fileName.
func Load(filePath string, fileName string, value interface{}) error {
	p := filepath.Join(filePath, fmt.Sprintf("%s.json", fileName))

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("could not find file '%s': %w", p, storage.NotFoundErr)
		}
		return fmt.Errorf("could not read file '%s': %w", p, err)
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal key for '%s': '%v': %w", fileName, err, storage.CouldNotLoadErr)
	}
	return nil
}
