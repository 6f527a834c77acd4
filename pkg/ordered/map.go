// Package ordered provides a map that remembers insertion order.
//
// Save files store dictionaries as a count followed by key/value pairs in
// whatever order the game happened to iterate them. Re-emitting a byte-exact
// file means replaying that order, so every dictionary in the document model
// is a Map rather than a built-in map. A Map marshals to a JSON object or a
// YAML mapping with keys in insertion order, and unmarshals the same way.
package ordered

import (
	"fmt"
	"strconv"
)

// Key is the set of key types used by save dictionaries.
type Key interface {
	string | int32
}

// Map is an insertion-ordered map. The zero value is an empty map ready to
// use.
type Map[K Key, V any] struct {
	keys   []K
	values map[K]V
}

// New returns an empty map with room for n entries.
func New[K Key, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0, n),
		values: make(map[K]V, n),
	}
}

// Len returns the number of entries
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored for k
func (m *Map[K, V]) Get(k K) (V, bool) {
	if m == nil || m.values == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[k]
	return v, ok
}

// Set stores v under k. A new key is appended to the order; an existing key
// keeps its position and takes the new value.
func (m *Map[K, V]) Set(k K, v V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Delete removes k, preserving the order of the remaining keys
func (m *Map[K, V]) Delete(k K) {
	if _, ok := m.values[k]; !ok {
		return
	}
	delete(m.values, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false
func (m *Map[K, V]) Range(fn func(k K, v V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a shallow copy
func (m *Map[K, V]) Clone() *Map[K, V] {
	out := New[K, V](m.Len())
	m.Range(func(k K, v V) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// keyString renders a key the way it appears as a JSON object key.
func keyString[K Key](k K) string {
	switch v := any(k).(type) {
	case string:
		return v
	case int32:
		return strconv.FormatInt(int64(v), 10)
	}
	panic("unreachable")
}

// parseKey is the inverse of keyString. Integer keys must be base-10 and
// fit in 32 bits.
func parseKey[K Key](s string) (K, error) {
	var k K
	switch p := any(&k).(type) {
	case *string:
		*p = s
	case *int32:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return k, fmt.Errorf("dictionary key %q is not a 32-bit integer", s)
		}
		*p = int32(n)
	}
	return k, nil
}
