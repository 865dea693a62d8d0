package storage

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ReportDir   = "reports"
	RegistryDir = "registry"
)

var (
	// DefaultDir is the root folder for file based storage.
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

// EventRegistry creates a new registry for the given path.
type EventRegistry func(path string) (Registry, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
	InvalidKeyErr   = errors.New("invalid key")
)

// Key is the storage key for a general implementation
type Key struct {
	Hash  int64  `json:"hash"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// K is a simplified key for storage
type K struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Path returns the file name representation of the key.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%v_%s", k.Name, k.Hash, k.Label)
}

// Validate checks that the key maps to a single file name.
func (k Key) Validate() error {
	return validName(k.Path())
}

// Validate checks that name and label each map to a single directory.
func (k K) Validate() error {
	if k.Name == "" {
		return fmt.Errorf("empty name: %w", InvalidKeyErr)
	}
	if err := validName(k.Name); err != nil {
		return err
	}
	if k.Label == "" {
		return nil
	}
	return validName(k.Label)
}

func validName(s string) error {
	if s == "" || s == "." || strings.Contains(s, "..") || strings.ContainsAny(s, "/\\\x00") {
		return fmt.Errorf("'%s' is not a plain name: %w", s, InvalidKeyErr)
	}
	return nil
}

// Registry is an append only store of events.
type Registry interface {
	Add(key K, value interface{}) error
	GetAll(key K, values interface{}) error
}

// Persistence stores and loads single values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
