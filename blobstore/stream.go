package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNoStream is returned when a StreamStore direction is not configured.
var ErrNoStream = errors.New("blobstore: stream not configured")

// StreamStore adapts a reader and a writer (typically stdin and stdout) to
// BlobStore. Names are ignored.
//
// Put is not atomic: a failure during the single Write can leave partial
// output downstream. It is only ever called with fully encoded data.
type StreamStore struct {
	r io.Reader
	w io.Writer
}

// NewStreamStore creates a StreamStore. Either side may be nil.
func NewStreamStore(r io.Reader, w io.Writer) *StreamStore {
	return &StreamStore{r: r, w: w}
}

// Get reads the reader to EOF.
func (s *StreamStore) Get(ctx context.Context, _ string) ([]byte, error) {
	if s.r == nil {
		return nil, ErrNoStream
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.ReadAll(s.r)
}

// Put writes data in one call and flushes the writer if it supports it.
func (s *StreamStore) Put(ctx context.Context, _ string, data []byte) error {
	if s.w == nil {
		return ErrNoStream
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.w.Write(data); err != nil {
		return err
	}
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	if f, ok := s.w.(interface{ Sync() error }); ok {
		// Pipes and terminals reject fsync; that is not a write failure.
		_ = f.Sync()
	}
	return nil
}
