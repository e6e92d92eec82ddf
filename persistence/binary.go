package persistence

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hupe1980/vecbin/dataset"
	"github.com/hupe1980/vecbin/internal/fs"
)

// Writer writes the packed binary layout.
type Writer struct {
	w   io.Writer
	buf [HeaderSize]byte
}

// NewWriter creates a new binary writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes the 12-byte header.
func (bw *Writer) WriteHeader(header Header) error {
	if header.Dimension == 0 {
		return fmt.Errorf("%w: dimension must be positive", ErrInvalidHeader)
	}
	b := ByteOrder.AppendUint32(bw.buf[:0], header.Dimension)
	b = ByteOrder.AppendUint64(b, header.Count)
	_, err := bw.w.Write(b)
	return err
}

// WriteInt64Slice writes values as big-endian signed 64-bit integers.
func (bw *Writer) WriteInt64Slice(values []int64) error {
	if len(values) == 0 {
		return nil
	}

	// Chunked to bound the scratch allocation on large datasets.
	const chunk = 4096
	scratch := make([]byte, 0, min(len(values), chunk)*ScalarSize)
	for len(values) > 0 {
		n := min(len(values), chunk)
		scratch = scratch[:0]
		for _, v := range values[:n] {
			scratch = ByteOrder.AppendUint64(scratch, uint64(v))
		}
		if _, err := bw.w.Write(scratch); err != nil {
			return err
		}
		values = values[n:]
	}
	return nil
}

// WriteDataset writes the header and the flattened values of ds.
func (bw *Writer) WriteDataset(ds *dataset.Dataset) error {
	if err := bw.WriteHeader(Header{Dimension: ds.Dimension, Count: ds.Count()}); err != nil {
		return err
	}
	return bw.WriteInt64Slice(ds.Values)
}

// SaveToFile writes to a temp file in the target directory and renames it
// over filename once writeFunc succeeds. On failure the target is untouched.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	return SaveToFileFS(fs.Default, filename, writeFunc)
}

// SaveToFileFS is SaveToFile on an explicit file system.
func SaveToFileFS(fsys fs.FileSystem, filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	// Same directory so the rename is atomic.
	tmp, err := fsys.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if tmpName != "" {
			_ = fsys.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0o644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := fsys.Rename(tmpName, filename); err != nil {
		return err
	}
	tmpName = ""

	// Best effort: the data is already in place.
	_ = fsys.SyncDir(dir)
	return nil
}
