package persistence

import (
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/zeebo/blake3"
)

// Checksums are CRC32 (IEEE) over the uncompressed encoding. They detect
// accidental corruption only and are reported alongside the file, never
// stored in it: the layout has no room for one.

// CalculateChecksum calculates the CRC32 checksum of data.
func CalculateChecksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// DigestSize is the length of a BLAKE3 content digest.
const DigestSize = 32

// CalculateDigest returns the BLAKE3-256 digest of data.
func CalculateDigest(data []byte) [DigestSize]byte {
	return blake3.Sum256(data)
}

// ChecksumWriter wraps an io.Writer and computes a running CRC32 checksum
// and BLAKE3 digest of everything written through it.
type ChecksumWriter struct {
	w      io.Writer
	hash   hash.Hash32
	digest *blake3.Hasher
	n      int64
}

// NewChecksumWriter creates a new checksumming writer.
func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{
		w:      w,
		hash:   crc32.NewIEEE(),
		digest: blake3.New(),
	}
}

// Write implements io.Writer.
func (cw *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	// Only bytes that reached the underlying writer count.
	_, _ = cw.hash.Write(p[:n])
	_, _ = cw.digest.Write(p[:n])
	cw.n += int64(n)
	return n, err
}

// Sum returns the current checksum value.
func (cw *ChecksumWriter) Sum() uint32 {
	return cw.hash.Sum32()
}

// Digest returns the BLAKE3-256 digest of the bytes written so far.
func (cw *ChecksumWriter) Digest() [DigestSize]byte {
	var d [DigestSize]byte
	copy(d[:], cw.digest.Sum(nil))
	return d
}

// Written returns the number of bytes written so far.
func (cw *ChecksumWriter) Written() int64 {
	return cw.n
}

// Verify checks data against an expected checksum.
func Verify(data []byte, expected uint32) error {
	if actual := CalculateChecksum(data); actual != expected {
		return &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}
