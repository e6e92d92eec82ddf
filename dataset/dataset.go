package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/vecbin/codec"
)

// VectorsField is the top-level key holding the vector list.
const VectorsField = "vectors"

// MaxDimension is the largest dimension that fits in the 32-bit header field.
const MaxDimension uint64 = math.MaxUint32

// Dataset is a validated, flattened set of equal-length vectors.
//
// Values holds every vector's elements in vector order, then element order.
type Dataset struct {
	Dimension uint32
	Values    []int64
}

// Count returns the number of vectors.
func (d *Dataset) Count() uint64 {
	if d.Dimension == 0 {
		return 0
	}
	n := uint64(len(d.Values))
	dim := uint64(d.Dimension)
	if n%dim != 0 {
		panic(fmt.Sprintf("dataset: %d values do not divide into vectors of dimension %d", n, dim))
	}
	return n / dim
}

// Parse decodes data with c (codec.Default when nil) and validates the result.
func Parse(data []byte, c codec.Codec) (*Dataset, error) {
	if c == nil {
		c = codec.Default
	}

	tree, err := c.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return FromTree(tree)
}

// FromTree validates a decoded JSON tree (objects as map[string]any, arrays
// as []any, numbers as json.Number) and flattens it into a Dataset.
func FromTree(v any) (*Dataset, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object with a %q key, got %s", ErrMissingField, VectorsField, kindOf(v))
	}

	raw, ok := obj[VectorsField]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, VectorsField)
	}

	vectors, ok := raw.([]any)
	if !ok {
		return nil, &ErrWrongType{Index: NoIndex, Position: NoIndex, Expected: "a list", Actual: kindOf(raw)}
	}
	if len(vectors) == 0 {
		return nil, ErrEmptyInput
	}

	first, ok := vectors[0].([]any)
	if !ok {
		return nil, &ErrWrongType{Index: 0, Position: NoIndex, Expected: "a list", Actual: kindOf(vectors[0])}
	}
	if len(first) == 0 || uint64(len(first)) > MaxDimension {
		return nil, &ErrInvalidDimension{Dimension: uint64(len(first))}
	}
	dim := len(first)

	values := make([]int64, 0, capacityHint(vectors, dim))
	for i, rv := range vectors {
		vec, ok := rv.([]any)
		if !ok {
			return nil, &ErrWrongType{Index: i, Position: NoIndex, Expected: "a list", Actual: kindOf(rv)}
		}
		if len(vec) != dim {
			return nil, &ErrDimensionMismatch{Index: i, Expected: dim, Actual: len(vec)}
		}
		for j, x := range vec {
			n, err := scalar(i, j, x)
			if err != nil {
				return nil, err
			}
			values = append(values, n)
		}
	}

	return &Dataset{Dimension: uint32(dim), Values: values}, nil
}

// capacityHint sums the lengths of the vectors that can still be valid, so
// a malformed tail cannot inflate the allocation.
func capacityHint(vectors []any, dim int) int {
	total := 0
	for _, rv := range vectors {
		vec, ok := rv.([]any)
		if !ok || len(vec) != dim {
			break
		}
		total += dim
	}
	return total
}

func scalar(i, j int, x any) (int64, error) {
	num, ok := x.(json.Number)
	if !ok || !isIntegerLiteral(num) {
		return 0, &ErrWrongType{Index: i, Position: j, Expected: "an integer", Actual: kindOf(x)}
	}

	n, err := strconv.ParseInt(string(num), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ErrScalarOutOfRange{Index: i, Position: j, Value: string(num)}
		}
		return 0, &ErrWrongType{Index: i, Position: j, Expected: "an integer", Actual: fmt.Sprintf("%q", string(num))}
	}
	return n, nil
}

// isIntegerLiteral reports whether a JSON number was written without a
// fraction or exponent. 1.0 and 1e3 are floats.
func isIntegerLiteral(num json.Number) bool {
	return !strings.ContainsAny(string(num), ".eE")
}

func kindOf(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case json.Number:
		if isIntegerLiteral(x) {
			return "an integer"
		}
		return "a float"
	case float64, float32:
		return "a float"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
