package codec

import (
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML decodes YAML documents with the same shape as the JSON input.
type YAML struct{}

// Decode parses a single YAML document into a JSON tree.
func (YAML) Decode(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if doc.Kind == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrSyntax)
	}
	return yamlValue(&doc)
}

// Name returns the unique name of the codec ("yaml").
func (YAML) Name() string { return "yaml" }

// YAML resolves integers too large for int64 as floats; a plain digit
// string is still an integer literal here.
var yamlDecimal = regexp.MustCompile(`^[-+]?[0-9][0-9_]*$`)

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return s, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, fmt.Errorf("%w: unexpected YAML node kind %d at line %d", ErrSyntax, n.Kind, n.Line)
	}
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!int":
		return yamlInteger(n)
	case "!!float":
		if yamlDecimal.MatchString(n.Value) {
			return yamlInteger(n)
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		return f, nil
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		return b, nil
	default:
		return n.Value, nil
	}
}

// yamlInteger normalizes 0x, 0o, 0b, + and _ forms to a decimal literal.
func yamlInteger(n *yaml.Node) (any, error) {
	base := 0
	if yamlDecimal.MatchString(n.Value) {
		base = 10 // 010 is ten, not eight
	}
	var i big.Int
	if _, ok := i.SetString(strings.ReplaceAll(n.Value, "_", ""), base); !ok {
		return nil, fmt.Errorf("%w: invalid integer %q at line %d", ErrSyntax, n.Value, n.Line)
	}
	return json.Number(i.String()), nil
}
