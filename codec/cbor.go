package codec

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

var cborDecMode cbor.DecMode

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{
		// Datasets never use non-string keys.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOR decodes RFC 8949 documents with the same shape as the JSON input.
//
// Integers (including bignums) become json.Number so they are range-checked
// like JSON literals; floats stay float64.
type CBOR struct{}

// Decode parses a single CBOR data item into a JSON tree.
func (CBOR) Decode(data []byte) (any, error) {
	var v any
	if err := cborDecMode.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return normalizeCBOR(v), nil
}

// Name returns the unique name of the codec ("cbor").
func (CBOR) Name() string { return "cbor" }

func normalizeCBOR(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeCBOR(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalizeCBOR(e)
		}
		return x
	case uint64:
		return json.Number(strconv.FormatUint(x, 10))
	case int64:
		return json.Number(strconv.FormatInt(x, 10))
	case big.Int:
		return json.Number(x.String())
	case *big.Int:
		return json.Number(x.String())
	default:
		return v
	}
}
