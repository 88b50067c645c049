package storage

import (
	"context"
	"errors"
	"sync"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
)

// Ensure MemoryObjectStorage implements catalogapp.ObjectStorage
var _ catalogapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps uploaded objects in memory.
// Use this for development and tests until a real S3 backend is configured.
type MemoryObjectStorage struct {
	// BaseURL is the base URL for generated public URLs.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStorage creates a new MemoryObjectStorage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores the object in memory
func (s *MemoryObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = buf
	return nil
}

// Delete removes the object if present
func (s *MemoryObjectStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// Exists reports whether the object was uploaded
func (s *MemoryObjectStorage) Exists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// PublicURL returns the URL the object would be served under
func (s *MemoryObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}

// Get returns the stored bytes for assertions in tests
func (s *MemoryObjectStorage) Get(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
