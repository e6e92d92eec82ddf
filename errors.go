package vecbin

import (
	"github.com/hupe1980/vecbin/dataset"
)

// Validation errors. See package dataset for details.
var (
	ErrValidation     = dataset.ErrValidation
	ErrMissingField   = dataset.ErrMissingField
	ErrEmptyInput     = dataset.ErrEmptyInput
	ErrMalformedInput = dataset.ErrMalformedInput
)

type (
	// ErrWrongType indicates a value present but not of the expected kind.
	ErrWrongType = dataset.ErrWrongType

	// ErrInvalidDimension indicates a dimension of zero or above 2^32-1.
	ErrInvalidDimension = dataset.ErrInvalidDimension

	// ErrDimensionMismatch indicates a vector whose length differs from the first.
	ErrDimensionMismatch = dataset.ErrDimensionMismatch

	// ErrScalarOutOfRange indicates an integer outside the signed 64-bit range.
	ErrScalarOutOfRange = dataset.ErrScalarOutOfRange
)

// IsValidation reports whether err is an input validation failure, as opposed
// to an I/O or configuration error.
func IsValidation(err error) bool {
	return dataset.IsValidation(err)
}
