package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every validation failure via errors.Is.
	ErrValidation = errors.New("invalid dataset")

	// ErrMissingField is returned when the top-level value is not an object
	// or the vectors key is absent.
	ErrMissingField = fmt.Errorf("%w: missing field", ErrValidation)

	// ErrEmptyInput is returned when the vectors list has no elements, so no
	// dimension can be derived.
	ErrEmptyInput = fmt.Errorf("%w: the vectors list is empty", ErrValidation)

	// ErrMalformedInput is returned when the input is not well-formed JSON.
	ErrMalformedInput = fmt.Errorf("%w: malformed input", ErrValidation)
)

// NoIndex marks an ErrWrongType field that does not apply.
const NoIndex = -1

// ErrWrongType indicates a value present but not of the expected kind.
//
// Index is the vector index and Position the scalar position inside it;
// either is NoIndex when the offending value sits above that level.
type ErrWrongType struct {
	Index    int
	Position int
	Expected string
	Actual   string
}

func (e *ErrWrongType) Error() string {
	switch {
	case e.Index == NoIndex:
		return fmt.Sprintf("wrong type: field %q must be %s, got %s", VectorsField, e.Expected, e.Actual)
	case e.Position == NoIndex:
		return fmt.Sprintf("wrong type: vector %d must be %s, got %s", e.Index, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("wrong type: element %d of vector %d must be %s, got %s", e.Position, e.Index, e.Expected, e.Actual)
	}
}

func (e *ErrWrongType) Is(target error) bool { return target == ErrValidation }

// ErrInvalidDimension indicates a derived dimension that is zero or does not
// fit in an unsigned 32-bit field.
type ErrInvalidDimension struct {
	Dimension uint64
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d (must be in [1, %d])", e.Dimension, MaxDimension)
}

func (e *ErrInvalidDimension) Is(target error) bool { return target == ErrValidation }

// ErrDimensionMismatch indicates a vector whose length differs from the
// first vector's length.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: vector %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Is(target error) bool { return target == ErrValidation }

// ErrScalarOutOfRange indicates an integer that does not fit in a signed
// 64-bit value. Value holds the literal as written in the input.
//
// Values from 2^63 to 2^64-1 are rejected on purpose even though they fit
// in 64 bits: each element is packed as a signed int64, and reinterpreting
// them as negative numbers would corrupt the dataset silently.
type ErrScalarOutOfRange struct {
	Index    int
	Position int
	Value    string
}

func (e *ErrScalarOutOfRange) Error() string {
	return fmt.Sprintf("scalar out of range: element %d of vector %d (%s) is not representable as a signed 64-bit integer", e.Position, e.Index, e.Value)
}

func (e *ErrScalarOutOfRange) Is(target error) bool { return target == ErrValidation }

// IsValidation reports whether err is a dataset validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
