package storage

import (
	"sync"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// MemoryStorage keeps blobs in a map. Nothing survives the process; it
// backs tests and the "memory" backend selection.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]string
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]string)}
}

// Read returns the stored text for key. A missing key is (_, false, nil).
func (s *MemoryStorage) Read(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.blobs[key]
	return text, ok, nil
}

// Write stores text under key.
func (s *MemoryStorage) Write(key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = text
	return nil
}

// Exists reports whether key has a stored value.
func (s *MemoryStorage) Exists(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[key]
	return ok, nil
}

// Delete removes the stored value if present.
func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

var _ types.Storage = (*MemoryStorage)(nil)
