package blobstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutGet(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 42}
	require.NoError(t, store.Put(ctx, "points.bin", data))

	onDisk, err := os.ReadFile(filepath.Join(tmpDir, "points.bin"))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	got, err := store.Get(ctx, "points.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Overwrite replaces atomically and leaves no temp files.
	require.NoError(t, store.Put(ctx, "points.bin", []byte("v2")))
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestLocalStore_AbsoluteNames(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(abs, []byte(`{"vectors": [[1]]}`), 0o644))

	store := NewLocalStore("/does/not/matter")
	got, err := store.Get(context.Background(), abs)
	require.NoError(t, err)
	assert.Equal(t, `{"vectors": [[1]]}`, string(got))
}

func TestLocalStore_Errors(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Get(context.Background(), "missing.json")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = store.Put(context.Background(), filepath.Join("no-such-dir", "out.bin"), []byte("x"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Put(ctx, "out.bin", []byte("x")), context.Canceled)
	_, err = store.Get(ctx, "out.bin")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	data := []byte("hello")
	require.NoError(t, store.Put(ctx, "out/a.bin", data))
	require.NoError(t, store.Put(ctx, "out/b.bin", nil))
	require.NoError(t, store.Put(ctx, "in.json", nil))

	data[0] = 'j'
	got, err := store.Get(ctx, "out/a.bin")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got[0] = 'y'
	again, _ := store.Get(ctx, "out/a.bin")
	assert.Equal(t, "hello", string(again))

	assert.Equal(t, []string{"out/a.bin", "out/b.bin"}, store.List("out/"))
	assert.Len(t, store.List(""), 3)
}

type flushRecorder struct {
	bytes.Buffer
	flushed bool
}

func (f *flushRecorder) Flush() error {
	f.flushed = true
	return nil
}

func TestStreamStore(t *testing.T) {
	ctx := context.Background()
	out := &flushRecorder{}
	store := NewStreamStore(bytes.NewBufferString(`{"vectors": []}`), out)

	got, err := store.Get(ctx, "-")
	require.NoError(t, err)
	assert.Equal(t, `{"vectors": []}`, string(got))

	require.NoError(t, store.Put(ctx, "-", []byte{1, 2, 3}))
	assert.Equal(t, []byte{1, 2, 3}, out.Bytes())
	assert.True(t, out.flushed)

	empty := NewStreamStore(nil, nil)
	_, err = empty.Get(ctx, "-")
	assert.ErrorIs(t, err, ErrNoStream)
	assert.ErrorIs(t, empty.Put(ctx, "-", nil), ErrNoStream)
}

func TestLocation(t *testing.T) {
	store := NewMemoryStore()
	loc := Location{Store: store, Name: "x.bin"}

	require.NoError(t, loc.Put(context.Background(), []byte("abc")))
	got, err := loc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, "x.bin", loc.String())
}
