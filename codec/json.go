package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON is the standard-library JSON codec.
//
// Numbers are decoded as json.Number.
type JSON struct{}

// Decode parses data into a JSON tree.
func (JSON) Decode(data []byte) (any, error) {
	if !json.Valid(data) {
		return nil, ErrSyntax
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return v, nil
}

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}
