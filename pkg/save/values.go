package save

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/cm3d2save/pkg/binio"
)

// Int64 is a 64-bit integer field. In structured form it is the two-element
// array [low32, high32] of signed 32-bit words; a plain integer is also
// accepted on input.
type Int64 int64

// Pair returns the [low, high] words of v
func (v Int64) Pair() [2]int32 {
	return binio.SplitInt64(int64(v))
}

// Int64FromPair builds an Int64 from its [low, high] words
func Int64FromPair(pair [2]int32) Int64 {
	return Int64(binio.JoinInt64(pair))
}

func (v Int64) MarshalJSON() ([]byte, error) {
	p := v.Pair()
	return []byte(fmt.Sprintf("[%d,%d]", p[0], p[1])), nil
}

func (v *Int64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var pair []int32
		if err := json.Unmarshal(data, &pair); err != nil {
			return fmt.Errorf("64-bit value: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("64-bit value must be [low, high], got %d elements", len(pair))
		}
		*v = Int64FromPair([2]int32{pair[0], pair[1]})
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("64-bit value: %w", err)
	}
	*v = Int64(n)
	return nil
}

func (v Int64) MarshalYAML() (interface{}, error) {
	p := v.Pair()
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, w := range p {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: fmt.Sprint(w),
		})
	}
	return node, nil
}

func (v *Int64) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var pair []int32
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: 64-bit value must be [low, high]", node.Line)
		}
		*v = Int64FromPair([2]int32{pair[0], pair[1]})
		return nil
	}
	var n int64
	if err := node.Decode(&n); err != nil {
		return err
	}
	*v = Int64(n)
	return nil
}

// Blob is opaque binary data, base64 text in structured form.
type Blob []byte

func (b Blob) MarshalText() ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(out, b)
	return out, nil
}

func (b *Blob) UnmarshalText(text []byte) error {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(out, text)
	if err != nil {
		return fmt.Errorf("invalid base64 blob: %w", err)
	}
	*b = out[:n]
	return nil
}

// XYZ is a position, rotation or scale triple.
type XYZ struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// RGBA is a color with float channels.
type RGBA struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}
