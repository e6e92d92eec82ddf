// Package codec decodes converter input into a generic JSON tree.
//
// Decoded trees use map[string]any for objects, []any for arrays and
// json.Number for every number, so integers of any magnitude reach the
// validator unchanged and can be range-checked there.
package codec

import "errors"

// ErrSyntax is returned when the input is not a single well-formed JSON value.
var ErrSyntax = errors.New("invalid JSON document")

// Codec decodes raw input bytes into a JSON tree.
// Implementations must be safe for concurrent use.
type Codec interface {
	Decode(data []byte) (any, error)
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "yaml":
		return YAML{}, true
	case "cbor":
		return CBOR{}, true
	default:
		return nil, false
	}
}

// Names lists the built-in codec names.
func Names() []string {
	return []string{"json", "go-json", "yaml", "cbor"}
}
