package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/medisense-health/scheduler/internal/domain/providers"
)

// FileAdapter implements the BlobStore interface on the local filesystem,
// one file per key under a base directory. Writes go through a temp file and
// rename so a crash mid-write never leaves a truncated archive.
type FileAdapter struct {
	mu  sync.Mutex
	dir string
}

// NewFileAdapter creates a file-backed blob store rooted at dir
func NewFileAdapter(dir string) (providers.BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileAdapter{dir: dir}, nil
}

func (a *FileAdapter) path(key string) string {
	return filepath.Join(a.dir, key+".json")
}

// Get retrieves a blob; missing keys return (nil, nil)
func (a *FileAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	blob, err := os.ReadFile(a.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return blob, nil
}

// Set replaces the blob stored under key
func (a *FileAdapter) Set(ctx context.Context, key string, value []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	tmp := a.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	if err := os.Rename(tmp, a.path(key)); err != nil {
		return fmt.Errorf("failed to replace blob %s: %w", key, err)
	}
	return nil
}

// Remove deletes the blob stored under key
func (a *FileAdapter) Remove(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.Remove(a.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob %s: %w", key, err)
	}
	return nil
}
