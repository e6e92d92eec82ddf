// Package blobstore abstracts where converter input is read from and where
// encoded output is written to.
//
// A conversion reads its whole input with Get, validates and encodes it in
// memory, and only then hands the finished bytes to Put. Stores therefore
// never see partial output, and stores that can write atomically do so.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem; mmap reads, temp-file-and-rename writes
//   - MemoryStore: in-memory, for tests
//   - StreamStore: stdin/stdout
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and other S3-compatible services (minio-go)
//
// # Locations
//
// ParseURI parses a command-line argument into a URI:
//
//	"-"                   stdin or stdout
//	"data/points.json"    local file
//	"file:///tmp/p.bin"   local file
//	"s3://bucket/key"     Amazon S3
//	"minio://bucket/key"  MinIO
package blobstore
