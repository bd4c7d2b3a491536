package storage

import (
	"context"
	"sync"

	"github.com/medisense-health/scheduler/internal/domain/providers"
)

// MemoryAdapter implements the BlobStore interface in process memory. It is
// the default backend and the one used across the service test suites.
type MemoryAdapter struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryAdapter creates a new in-memory blob store
func NewMemoryAdapter() providers.BlobStore {
	return &MemoryAdapter{blobs: make(map[string][]byte)}
}

// Get retrieves a blob; missing keys return (nil, nil)
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	blob, ok := a.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Set replaces the blob stored under key
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	blob := make([]byte, len(value))
	copy(blob, value)
	a.blobs[key] = blob
	return nil
}

// Remove deletes the blob stored under key
func (a *MemoryAdapter) Remove(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.blobs, key)
	return nil
}
