package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
)

var (
	// ErrClosed is returned when accessing a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidOffset is returned for negative read offsets.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
	// ErrNotRegular is returned by Open for pipes, devices and directories.
	ErrNotRegular = errors.New("not a regular file")
)

// Mapping represents a read-only memory-mapped file.
type Mapping struct {
	data   []byte
	closed atomic.Bool
}

// Open maps the regular file at path into memory.
// Empty files yield a mapping with no data.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// The mapping stays valid after the descriptor is closed.
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: ErrNotRegular}
	}
	return mapFile(f, fi.Size())
}

func mapFile(f *os.File, size int64) (*Mapping, error) {
	if size == 0 {
		return &Mapping{}, nil
	}
	if int64(int(size)) != size {
		return nil, &os.PathError{Op: "mmap", Path: f.Name(), Err: errors.New("file too large")}
	}

	data, err := mmap(f, int(size))
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: f.Name(), Err: err}
	}

	_ = madviseSequential(data)
	return &Mapping{data: data}, nil
}

// Bytes returns the mapped data. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the mapped size in bytes.
func (m *Mapping) Size() int {
	return len(m.data)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the memory. It is safe to call more than once.
func (m *Mapping) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	if len(m.data) == 0 {
		return nil
	}
	data := m.data
	m.data = nil
	return munmap(data)
}

// ReadFile returns the content of path. Regular files are mapped and
// copied out; pipes, character devices and files that report a zero size
// (FIFOs, /dev/stdin, /proc entries) are read until EOF instead.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, &os.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	if !fi.Mode().IsRegular() || fi.Size() == 0 {
		return io.ReadAll(f)
	}

	m, err := mapFile(f, fi.Size())
	if err != nil {
		return nil, err
	}
	defer m.Close()

	out := make([]byte, m.Size())
	copy(out, m.Bytes())
	return out, nil
}
