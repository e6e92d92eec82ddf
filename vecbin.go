package vecbin

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/vecbin/blobstore"
	"github.com/hupe1980/vecbin/dataset"
	"github.com/hupe1980/vecbin/persistence"
)

// Result describes a successful conversion.
type Result struct {
	Dimension   uint32
	Count       uint64
	Size        int                          // Size of the raw layout in bytes
	Written     int                          // Bytes handed to the destination (after compression)
	Checksum    uint32                       // CRC32 (IEEE) of the raw layout
	Digest      [persistence.DigestSize]byte // BLAKE3-256 of the raw layout
	Compression persistence.Compression
	Duration    time.Duration
}

// Converter validates and encodes datasets. It holds no per-conversion state
// and is safe for concurrent use.
type Converter struct {
	opts options
}

// New creates a Converter.
func New(optFns ...Option) *Converter {
	return &Converter{opts: applyOptions(optFns)}
}

// Encode validates data in full and returns its binary encoding.
// On error the returned slice is nil.
func Encode(data []byte, optFns ...Option) ([]byte, Result, error) {
	return New(optFns...).Encode(data)
}

// Encode validates data in full and returns its binary encoding.
func (c *Converter) Encode(data []byte) ([]byte, Result, error) {
	start := time.Now()

	ds, err := dataset.Parse(data, c.opts.codec)
	if err != nil {
		return nil, Result{}, err
	}
	c.opts.logger.WithDimension(ds.Dimension).WithCount(ds.Count()).Debug("input validated",
		"codec", c.opts.codec.Name(),
		"input_bytes", len(data),
	)

	raw, cw, err := encodeDataset(ds)
	if err != nil {
		return nil, Result{}, err
	}

	out, err := persistence.Compress(raw, c.opts.compression)
	if err != nil {
		return nil, Result{}, fmt.Errorf("compress: %w", err)
	}

	return out, Result{
		Dimension:   ds.Dimension,
		Count:       ds.Count(),
		Size:        len(raw),
		Written:     len(out),
		Checksum:    cw.Sum(),
		Digest:      cw.Digest(),
		Compression: c.opts.compression,
		Duration:    time.Since(start),
	}, nil
}

func encodeDataset(ds *dataset.Dataset) ([]byte, *persistence.ChecksumWriter, error) {
	size := persistence.EncodedSize(ds.Dimension, ds.Count())

	buf := bytes.NewBuffer(make([]byte, 0, size))
	cw := persistence.NewChecksumWriter(buf)
	if err := persistence.NewWriter(cw).WriteDataset(ds); err != nil {
		return nil, nil, fmt.Errorf("encode: %w", err)
	}
	if cw.Written() != int64(size) {
		panic(fmt.Sprintf("vecbin: encoded %d bytes, layout requires %d", cw.Written(), size))
	}
	return buf.Bytes(), cw, nil
}

// Convert reads src, validates and encodes it, and writes the result to dst.
//
// dst is only touched after the whole input has been validated and encoded,
// so a failed conversion leaves the destination as it was.
func (c *Converter) Convert(ctx context.Context, src, dst blobstore.Location) (Result, error) {
	start := time.Now()

	res, err := c.convert(ctx, src, dst)
	if err == nil {
		res.Duration = time.Since(start)
	}

	c.opts.metricsCollector.RecordConvert(res, err)
	c.opts.logger.LogConvert(ctx, src.String(), dst.String(), res, err)
	return res, err
}

func (c *Converter) convert(ctx context.Context, src, dst blobstore.Location) (Result, error) {
	data, err := src.Get(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", src, err)
	}

	out, res, err := c.Encode(data)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", src, err)
	}

	if err := dst.Put(ctx, out); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", dst, err)
	}

	if c.opts.verify {
		stored, err := dst.Get(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("verify %s: %w", dst, err)
		}
		if err := persistence.Verify(stored, persistence.CalculateChecksum(out)); err != nil {
			return Result{}, fmt.Errorf("verify %s: %w", dst, err)
		}
	}
	return res, nil
}
