package vecbin

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecbin/blobstore"
	"github.com/hupe1980/vecbin/codec"
	"github.com/hupe1980/vecbin/persistence"
	"github.com/hupe1980/vecbin/testutil"
)

func TestEncode_Example(t *testing.T) {
	out, res, err := Encode([]byte(`{"vectors": [[1,2],[3,4],[5,6]]}`))
	require.NoError(t, err)

	want := "00000002" + "0000000000000003" +
		"0000000000000001" + "0000000000000002" + "0000000000000003" +
		"0000000000000004" + "0000000000000005" + "0000000000000006"
	assert.Equal(t, want, hex.EncodeToString(out))

	assert.Equal(t, uint32(2), res.Dimension)
	assert.Equal(t, uint64(3), res.Count)
	assert.Equal(t, 12+8*6, res.Size)
	assert.Equal(t, res.Size, res.Written)
	assert.Equal(t, persistence.CalculateChecksum(out), res.Checksum)
	assert.Equal(t, persistence.CalculateDigest(out), res.Digest)
	assert.Equal(t, persistence.CompressionNone, res.Compression)
}

func TestEncode_RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}, codec.YAML{}} {
		for _, shape := range []struct{ n, dim int }{{1, 1}, {3, 2}, {50, 7}, {257, 16}} {
			vectors := rng.IntVectors(shape.n, shape.dim)

			out, res, err := Encode(testutil.DatasetJSON(vectors, nil), WithCodec(c))
			require.NoError(t, err)

			hdr, values, err := testutil.Decode(out)
			require.NoError(t, err)
			assert.Equal(t, uint32(shape.dim), hdr.Dimension)
			assert.Equal(t, uint64(shape.n), hdr.Count)
			assert.Equal(t, testutil.Flatten(vectors), values)
			assert.Equal(t, 12+8*shape.n*shape.dim, len(out))
			assert.Equal(t, hdr.Dimension, res.Dimension)
			assert.Equal(t, hdr.Count, res.Count)
		}
	}
}

func TestEncode_ClusteredInputWithExtraKeys(t *testing.T) {
	rng := testutil.NewRNG(42)
	centers := [][]int64{{0, 0, 0}, {100, 200, 300}, {-50, 20, 0}}
	vectors := rng.GaussianIntVectors(1000, centers, 10)
	doc := testutil.DatasetJSON(vectors, map[string]string{
		"K":                            "3",
		"initialisation picking limit": "4",
	})

	out, res, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), res.Dimension)
	assert.Equal(t, uint64(1000), res.Count)

	_, values, err := testutil.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, testutil.Flatten(vectors), values)
}

func TestEncode_DimensionMismatchAnywhere(t *testing.T) {
	rng := testutil.NewRNG(7)

	for trial := 0; trial < 20; trial++ {
		vectors := rng.IntVectors(10, 4)
		bad := 1 + rng.Intn(9)
		vectors[bad] = vectors[bad][:rng.Intn(4)]

		out, _, err := Encode(testutil.DatasetJSON(vectors, nil))
		assert.Nil(t, out)

		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, bad, dm.Index)
		assert.Equal(t, 4, dm.Expected)
		assert.Equal(t, len(vectors[bad]), dm.Actual)
	}
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, err error)
	}{
		{`{"vectors": []}`, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmptyInput) }},
		{`{"points": []}`, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMissingField) }},
		{`{"vectors": [[1,2],[3]]}`, func(t *testing.T, err error) {
			var dm *ErrDimensionMismatch
			require.ErrorAs(t, err, &dm)
			assert.Equal(t, ErrDimensionMismatch{Index: 1, Expected: 2, Actual: 1}, *dm)
		}},
		{`{"vectors": [[1, "x"]]}`, func(t *testing.T, err error) {
			var wt *ErrWrongType
			require.ErrorAs(t, err, &wt)
			assert.Equal(t, 0, wt.Index)
			assert.Equal(t, 1, wt.Position)
		}},
		{`{"vectors": [[18446744073709551616]]}`, func(t *testing.T, err error) {
			var sr *ErrScalarOutOfRange
			require.ErrorAs(t, err, &sr)
		}},
		{`{"vectors": [[-18446744073709551616]]}`, func(t *testing.T, err error) {
			var sr *ErrScalarOutOfRange
			require.ErrorAs(t, err, &sr)
		}},
		{`{"vectors": [[]]}`, func(t *testing.T, err error) {
			var id *ErrInvalidDimension
			require.ErrorAs(t, err, &id)
		}},
		{`not json`, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMalformedInput) }},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, res, err := Encode([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, Result{}, res)
			assert.True(t, IsValidation(err))
			tt.check(t, err)
		})
	}
}

func TestEncode_JSONC(t *testing.T) {
	in := []byte(`{
		// exported by hand
		"vectors": [[1, 2], [3, 4],],
	}`)

	_, _, err := Encode(in)
	require.ErrorIs(t, err, ErrMalformedInput)

	out, res, err := Encode(in, WithJSONC(true))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Count)
	assert.Len(t, out, 12+8*4)
}

func TestEncode_CBORInput(t *testing.T) {
	vectors := testutil.NewRNG(99).IntVectors(20, 5)
	doc, err := cbor.Marshal(map[string]any{"K": 2, "vectors": vectors})
	require.NoError(t, err)

	out, res, err := Encode(doc, WithCodec(codec.CBOR{}))
	require.NoError(t, err)
	assert.Equal(t, uint64(20), res.Count)

	_, values, err := testutil.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, testutil.Flatten(vectors), values)

	doc, err = cbor.Marshal(map[string]any{"vectors": [][]uint64{{1, 1 << 63}}})
	require.NoError(t, err)
	_, _, err = Encode(doc, WithCodec(codec.CBOR{}))
	var sr *ErrScalarOutOfRange
	require.ErrorAs(t, err, &sr)
	assert.Equal(t, "9223372036854775808", sr.Value)
}

func TestEncode_Compression(t *testing.T) {
	vectors := testutil.NewRNG(1).GaussianIntVectors(500, [][]int64{{10, 10}}, 2)
	doc := testutil.DatasetJSON(vectors, nil)

	raw, plain, err := Encode(doc)
	require.NoError(t, err)

	t.Run("lz4", func(t *testing.T) {
		out, res, err := Encode(doc, WithCompression(persistence.CompressionLZ4))
		require.NoError(t, err)
		assert.Equal(t, persistence.CompressionLZ4, res.Compression)
		assert.Equal(t, plain.Checksum, res.Checksum)
		assert.Equal(t, plain.Digest, res.Digest)
		assert.Equal(t, len(raw), res.Size)
		assert.Equal(t, len(out), res.Written)
		assert.Less(t, res.Written, res.Size)

		got, err := io.ReadAll(lz4.NewReader(bytes.NewReader(out)))
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("zstd", func(t *testing.T) {
		out, res, err := Encode(doc, WithCompression(persistence.CompressionZSTD))
		require.NoError(t, err)
		assert.Equal(t, plain.Checksum, res.Checksum)

		dec, err := zstd.NewReader(nil)
		require.NoError(t, err)
		defer dec.Close()
		got, err := dec.DecodeAll(out, nil)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})
}

func TestConverter_Convert(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "in.json", []byte(`{"vectors": [[1,2],[3,4],[5,6]]}`)))

	metrics := &BasicMetricsCollector{}
	conv := New(WithMetricsCollector(metrics))

	res, err := conv.Convert(ctx,
		blobstore.Location{Store: store, Name: "in.json"},
		blobstore.Location{Store: store, Name: "out.bin"},
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.Count)
	assert.Positive(t, res.Duration)

	out, err := store.Get(ctx, "out.bin")
	require.NoError(t, err)
	_, values, err := testutil.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, values)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.ConvertCount)
	assert.Equal(t, int64(0), stats.ConvertErrors)
	assert.Equal(t, int64(3), stats.VectorsWritten)
	assert.Equal(t, int64(len(out)), stats.BytesWritten)
}

func TestConverter_FailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad.json", []byte(`{"vectors": [[1,2],[3]]}`)))

	metrics := &BasicMetricsCollector{}
	conv := New(WithMetricsCollector(metrics))

	_, err := conv.Convert(ctx,
		blobstore.Location{Store: store, Name: "bad.json"},
		blobstore.Location{Store: store, Name: "out.bin"},
	)
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Contains(t, err.Error(), "bad.json")

	_, err = store.Get(ctx, "out.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = conv.Convert(ctx,
		blobstore.Location{Store: store, Name: "missing.json"},
		blobstore.Location{Store: store, Name: "out.bin"},
	)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.False(t, IsValidation(err))

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.ConvertCount)
	assert.Equal(t, int64(2), stats.ConvertErrors)
	assert.Equal(t, int64(1), stats.ValidationErrors)
	assert.Equal(t, time.Duration(0), stats.AvgDuration)
}

func TestConverter_LocalFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.json"), []byte(`{"vectors": [[1, 2.5]]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "out.bin"), []byte("previous"), 0o644))

	store := blobstore.NewLocalStore(dir)
	_, err := New().Convert(context.Background(),
		blobstore.Location{Store: store, Name: "in.json"},
		blobstore.Location{Store: store, Name: "out.bin"},
	)
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.bin"))
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

type failingStore struct{ blobstore.BlobStore }

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func TestConverter_PutError(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, "in.json", []byte(`{"vectors": [[1]]}`)))

	_, err := New().Convert(ctx,
		blobstore.Location{Store: mem, Name: "in.json"},
		blobstore.Location{Store: failingStore{mem}, Name: "out.bin"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write out.bin")
	assert.False(t, IsValidation(err))
}

type bitFlipStore struct{ *blobstore.MemoryStore }

func (s bitFlipStore) Put(ctx context.Context, name string, data []byte) error {
	corrupted := append([]byte(nil), data...)
	corrupted[len(corrupted)-1] ^= 0x01
	return s.MemoryStore.Put(ctx, name, corrupted)
}

func TestConverter_Verify(t *testing.T) {
	ctx := context.Background()
	mem := blobstore.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, "in.json", []byte(`{"vectors": [[1,2],[3,4]]}`)))
	src := blobstore.Location{Store: mem, Name: "in.json"}

	for _, c := range []persistence.Compression{persistence.CompressionNone, persistence.CompressionZSTD} {
		_, err := New(WithVerify(true), WithCompression(c)).Convert(ctx, src, blobstore.Location{Store: mem, Name: "out.bin"})
		require.NoError(t, err, c.String())
	}

	metrics := &BasicMetricsCollector{}
	_, err := New(WithVerify(true), WithMetricsCollector(metrics)).Convert(ctx, src,
		blobstore.Location{Store: bitFlipStore{mem}, Name: "flipped.bin"},
	)
	var mismatch *persistence.ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Contains(t, err.Error(), "verify flipped.bin")
	assert.False(t, IsValidation(err))
	assert.Equal(t, int64(0), metrics.GetStats().ValidationErrors)

	// Without verification the corruption goes unnoticed.
	_, err = New().Convert(ctx, src, blobstore.Location{Store: bitFlipStore{mem}, Name: "flipped.bin"})
	require.NoError(t, err)
}

func TestConverter_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "in.json", []byte(`{"vectors": [[1,2,3]]}`)))

	_, err := New(WithLogger(logger)).Convert(ctx,
		blobstore.Location{Store: store, Name: "in.json"},
		blobstore.Location{Store: store, Name: "out.bin"},
	)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"msg":"input validated"`)
	assert.Contains(t, logs, `"msg":"conversion completed"`)
	assert.Contains(t, logs, `"dimension":3`)
	assert.Contains(t, logs, `"count":1`)
	assert.Contains(t, logs, `"destination":"out.bin"`)
	assert.Contains(t, logs, `"blake3":"`)

	buf.Reset()
	_, err = New(WithLogger(logger)).Convert(ctx,
		blobstore.Location{Store: store, Name: "missing.json"},
		blobstore.Location{Store: store, Name: "out.bin"},
	)
	require.Error(t, err)
	assert.True(t, strings.Contains(buf.String(), `"level":"ERROR"`))
}

func TestOptions_NilValues(t *testing.T) {
	conv := New(WithCodec(nil), WithLogger(nil), WithMetricsCollector(nil), nil)
	assert.Equal(t, codec.Default.Name(), conv.opts.codec.Name())

	_, _, err := conv.Encode([]byte(`{"vectors": [[1]]}`))
	require.NoError(t, err)

	conv = New(WithCodec(codec.JSON{}), WithJSONC(true), WithLogLevel(slog.LevelError))
	assert.Equal(t, "json+jsonc", conv.opts.codec.Name())
}
