package fs

import (
	"io"
	"os"
)

// File is a temporary file being written before it is renamed into place.
type File interface {
	io.WriteCloser
	Name() string
	Sync() error
	Chmod(mode os.FileMode) error
}

// FileSystem is the subset of filesystem operations needed to replace a
// file atomically.
type FileSystem interface {
	CreateTemp(dir, pattern string) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	// SyncDir makes a completed rename in dir durable.
	SyncDir(dir string) error
}

// LocalFS implements FileSystem using the os package.
type LocalFS struct{}

func (LocalFS) CreateTemp(dir, pattern string) (File, error) {
	return os.CreateTemp(dir, pattern)
}

func (LocalFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (LocalFS) Remove(name string) error             { return os.Remove(name) }

func (LocalFS) SyncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// Default is the local file system.
var Default FileSystem = LocalFS{}
