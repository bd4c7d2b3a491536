package providers

import "context"

// BlobStore defines the persistence capability the record store depends on:
// get/set/remove of a single named blob. Mutations are whole-blob rewrites;
// concurrent cross-process writers are not coordinated (last write wins).
type BlobStore interface {
	// Get retrieves the blob stored under key. A missing key returns
	// (nil, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the blob stored under key. Removing a missing key is
	// a no-op.
	Remove(ctx context.Context, key string) error
}
