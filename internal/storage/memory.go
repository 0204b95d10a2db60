package storage

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps photo objects in a map. Suitable for tests and
// throwaway environments; objects vanish with the process.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Save reads the object fully into memory.
func (s *MemoryStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "memory://" + uuid.NewString()
	s.mu.Lock()
	s.objects[url] = data
	s.mu.Unlock()
	return url, nil
}

// Delete removes the object behind url.
func (s *MemoryStore) Delete(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[url]; !ok {
		return ErrObjectNotFound
	}
	delete(s.objects, url)
	return nil
}

// Get returns a stored object. Test helper.
func (s *MemoryStore) Get(url string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[url]
	return data, ok
}
