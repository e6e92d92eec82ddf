package blobstore

import (
	"context"
	"io"
	"path/filepath"

	"github.com/hupe1980/vecbin/internal/mmap"
	"github.com/hupe1980/vecbin/persistence"
)

// LocalStore implements BlobStore using the local file system.
// Names are resolved relative to root; absolute names are used as is.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
// An empty root resolves names against the working directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) path(name string) string {
	if filepath.IsAbs(name) || s.root == "" {
		return name
	}
	return filepath.Join(s.root, name)
}

// Get reads a blob through a read-only memory mapping.
func (s *LocalStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return mmap.ReadFile(s.path(name))
}

// Put writes a blob atomically: a temp file in the target directory is
// fsynced and renamed over the destination.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return persistence.SaveToFile(s.path(name), func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
