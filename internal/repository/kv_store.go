package repository

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// KVStore is the synchronous key-value collaborator behind the journal.
// Values are opaque strings; Get reports found=false for missing keys.
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

var ErrInvalidKey = errors.New("invalid storage key")

const defaultKVTimeout = 500 * time.Millisecond

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	return key, nil
}

type memoryKVStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryKVStore returns a process-local store, used by tests and the memory backend.
func NewMemoryKVStore() KVStore {
	return &memoryKVStore{
		items: make(map[string]string),
	}
}

func (s *memoryKVStore) Get(key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryKVStore) Set(key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryKVStore) Delete(key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
