package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore reads and writes whole blobs.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Get returns the full content of a blob.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put stores data under name, replacing any existing blob.
	Put(ctx context.Context, name string, data []byte) error
}

// Location names one blob in one store.
type Location struct {
	Store BlobStore
	Name  string
}

// Get reads the blob at the location.
func (l Location) Get(ctx context.Context) ([]byte, error) {
	return l.Store.Get(ctx, l.Name)
}

// Put writes data to the location.
func (l Location) Put(ctx context.Context, data []byte) error {
	return l.Store.Put(ctx, l.Name, data)
}

// String returns the blob name.
func (l Location) String() string {
	return l.Name
}
