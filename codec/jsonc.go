package codec

import "github.com/tidwall/jsonc"

// JSONC accepts JSON extended with // line comments, /* block comments */
// and trailing commas. Comments and trailing commas are stripped before the
// wrapped codec sees the document.
type JSONC struct {
	Codec Codec
}

// Decode strips comments and trailing commas, then delegates.
func (c JSONC) Decode(data []byte) (any, error) {
	inner := c.Codec
	if inner == nil {
		inner = Default
	}
	return inner.Decode(jsonc.ToJSON(data))
}

// Name returns the wrapped codec name with a "+jsonc" suffix.
func (c JSONC) Name() string {
	inner := c.Codec
	if inner == nil {
		inner = Default
	}
	return inner.Name() + "+jsonc"
}
