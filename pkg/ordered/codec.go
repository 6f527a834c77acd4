package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the map as a JSON object with keys in insertion order
func (m Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(keyString(k)); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("failed to marshal value for key %q: %w", keyString(k), err)
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// trimNewline drops the newline json.Encoder appends after each value
func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

// UnmarshalJSON reads a JSON object, keeping its key order. A repeated key
// keeps its first position and takes the last value.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	*m = Map[K, V]{keys: []K{}, values: map[K]V{}}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		k, err := parseKey[K](name)
		if err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode value for key %q: %w", name, err)
		}
		m.Set(k, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalYAML writes the map as a YAML mapping with keys in insertion order
func (m Map[K, V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: keyString(k)}
		if _, isInt := any(k).(int32); isInt {
			key.Tag = "!!int"
		} else {
			key.Tag = "!!str"
		}
		val := &yaml.Node{}
		if err := val.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("failed to marshal value for key %q: %w", keyString(k), err)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// UnmarshalYAML reads a YAML mapping, keeping its key order
func (m *Map[K, V]) UnmarshalYAML(node *yaml.Node) error {
	*m = Map[K, V]{keys: []K{}, values: map[K]V{}}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, err := parseKey[K](node.Content[i].Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return err
		}
		m.Set(k, v)
	}
	return nil
}
