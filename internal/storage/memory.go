package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var _ ObjectStorage = (*MemoryStorage)(nil)

// MemoryStorage keeps objects in a map. Used in tests and local runs where
// no object store is configured.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (m *MemoryStorage) Upload(ctx context.Context, data []byte, contentType string) (*Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "media/" + uuid.New().String() + extensionFor(contentType)
	m.objects[key] = append([]byte(nil), data...)

	return &Object{Path: key, PublicURL: "mem://" + key}, nil
}

func (m *MemoryStorage) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[path]; !ok {
		return fmt.Errorf("object %q not found", path)
	}
	delete(m.objects, path)
	return nil
}

// Len returns the number of stored objects.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Has reports whether an object exists at path.
func (m *MemoryStorage) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok
}
