package persistence

import (
	"encoding/binary"
	"errors"
)

const (
	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 12

	// ScalarSize is the size of one packed element in bytes.
	ScalarSize = 8
)

// ByteOrder is network byte order.
var ByteOrder = binary.BigEndian

var (
	ErrInvalidHeader = errors.New("invalid header")
	ErrTruncated     = errors.New("truncated data")
)

// Header is the 12-byte header at the start of every file.
type Header struct {
	Dimension uint32 // Vector length
	Count     uint64 // Number of vectors
}

// EncodedSize returns the total file size for the given shape.
func EncodedSize(dimension uint32, count uint64) int {
	return HeaderSize + ScalarSize*int(dimension)*int(count)
}
