// text.go implements the text, JSON and YAML encodings of ChunkType.
//
// Separated from chunk_type.go so the core value type stays free of
// serialisation concerns. Every decoding path funnels through Parse, so a
// ChunkType read from JSON or a config file has passed the same checks as
// one built directly.
//
// Design: JSON is handled by encoding/json through the text marshalers, so
// a ChunkType appears as a plain string ("IHDR") in results and config.
// YAML goes through yaml.v3's Marshaler/Unmarshaler because yaml.v3 does
// not consult encoding.TextUnmarshaler for scalars inside sequences.

package chunktype

import (
	"encoding"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	_ encoding.TextMarshaler   = ChunkType{}
	_ encoding.TextAppender    = ChunkType{}
	_ encoding.TextUnmarshaler = (*ChunkType)(nil)
	_ yaml.Marshaler           = ChunkType{}
	_ yaml.Unmarshaler         = (*ChunkType)(nil)
)

// AppendText appends the four characters to b.
func (c ChunkType) AppendText(b []byte) ([]byte, error) {
	return append(b, c.b[:]...), nil
}

// MarshalText returns the four characters.
func (c ChunkType) MarshalText() ([]byte, error) {
	return c.AppendText(make([]byte, 0, Size))
}

// UnmarshalText parses text with Parse. On error *c is left unchanged.
func (c *ChunkType) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalYAML encodes c as a plain string scalar.
func (c ChunkType) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML decodes a string scalar with Parse. On error *c is left
// unchanged.
func (c *ChunkType) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: chunk type must be a string", node.Line)
	}
	v, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: chunk type %q: %w", node.Line, node.Value, err)
	}
	*c = v
	return nil
}
