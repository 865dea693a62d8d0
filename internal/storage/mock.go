package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MockStorage keeps the encoded values in memory.
type MockStorage struct {
	mutex    *sync.RWMutex
	Elements map[Key][]byte
}

// NewMockStorage creates a new in memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		mutex:    new(sync.RWMutex),
		Elements: make(map[Key][]byte),
	}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}
	m.Elements[k] = bb
	return nil
}

func (m *MockStorage) Load(k Key, value interface{}) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	bb, ok := m.Elements[k]
	if !ok {
		return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
	}
	if err := json.Unmarshal(bb, value); err != nil {
		return fmt.Errorf("could not unmarshal value: %w", CouldNotLoadErr)
	}
	return nil
}

// MockRegistry keeps the added events in memory.
type MockRegistry struct {
	mutex  *sync.RWMutex
	Events map[K][]interface{}
}

// NewMockRegistry creates a new in memory registry.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{
		mutex:  new(sync.RWMutex),
		Events: make(map[K][]interface{}),
	}
}

func (m *MockRegistry) Add(key K, value interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Events[key] = append(m.Events[key], value)
	return nil
}

// GetAll decodes all events for the key into the given slice pointer.
func (m *MockRegistry) GetAll(key K, values interface{}) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	bb, err := json.Marshal(m.Events[key])
	if err != nil {
		return fmt.Errorf("could not marshal events: %w", err)
	}
	if err := json.Unmarshal(bb, values); err != nil {
		return fmt.Errorf("could not unmarshal events: %w", CouldNotLoadErr)
	}
	return nil
}
