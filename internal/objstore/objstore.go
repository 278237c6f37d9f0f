package objstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_object_store.go -package=mocks talentmatch/internal/objstore ObjectStore

import "context"

// ObjectStore defines the interface for resume file storage.
// Callers persist only the object path; public URLs are derived on every
// read so links never go stale.
type ObjectStore interface {
	// Put stores data at the given path. Storing to an existing path fails
	// rather than silently overwriting.
	Put(ctx context.Context, path string, data []byte) error
	// URL returns the public URL for a stored object path.
	URL(path string) string
	// Delete removes the object at the given path. Deleting an absent
	// object succeeds.
	Delete(ctx context.Context, path string) error
}
