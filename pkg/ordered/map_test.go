package ordered

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMap_ZeroValueUsable(t *testing.T) {
	var m Map[string, int32]
	assert.Equal(t, 0, m.Len())
	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Set("a", 1)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int32(1), v)
}

func TestMap_InsertionOrder(t *testing.T) {
	m := New[string, int32](0)
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())

	// overwrite keeps position
	m.Set("zeta", 10)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	v, _ := m.Get("zeta")
	assert.Equal(t, int32(10), v)
	assert.Equal(t, 3, m.Len())

	m.Delete("alpha")
	assert.Equal(t, []string{"zeta", "mid"}, m.Keys())
	m.Delete("missing")
	assert.Equal(t, 2, m.Len())
}

func TestMap_RangeStops(t *testing.T) {
	m := New[int32, string](3)
	m.Set(3, "c")
	m.Set(1, "a")
	m.Set(2, "b")

	var seen []int32
	m.Range(func(k int32, _ string) bool {
		seen = append(seen, k)
		return len(seen) < 2
	})
	assert.Equal(t, []int32{3, 1}, seen)
}

func TestMap_Clone(t *testing.T) {
	m := New[string, bool](0)
	m.Set("x", true)
	c := m.Clone()
	c.Set("y", false)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"x", "y"}, c.Keys())
}

func TestMap_JSONPreservesOrder(t *testing.T) {
	m := New[int32, string](0)
	m.Set(30, "thirty")
	m.Set(-2, "minus two")
	m.Set(1, "one")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"30":"thirty","-2":"minus two","1":"one"}`, string(data))

	var back Map[int32, string]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []int32{30, -2, 1}, back.Keys())
	v, _ := back.Get(-2)
	assert.Equal(t, "minus two", v)
}

func TestMap_JSONNestedInStruct(t *testing.T) {
	type holder struct {
		Flags Map[string, int32] `json:"flags"`
	}
	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"flags":{"b":2,"a":1}}`), &h))
	assert.Equal(t, []string{"b", "a"}, h.Flags.Keys())

	out, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"flags":{"b":2,"a":1}}`, string(out))
	assert.Equal(t, `{"flags":{"b":2,"a":1}}`, string(out))
}

func TestMap_JSONDuplicateKeyLastWins(t *testing.T) {
	var m Map[string, int32]
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":2,"a":3}`), &m))
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, int32(3), v)
}

func TestMap_JSONBadIntegerKey(t *testing.T) {
	var m Map[int32, int32]
	err := json.Unmarshal([]byte(`{"abc":1}`), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a 32-bit integer")

	err = json.Unmarshal([]byte(`{"4294967296":1}`), &m)
	require.Error(t, err)
}

func TestMap_JSONNullAndWrongShape(t *testing.T) {
	var m Map[string, int32]
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Equal(t, 0, m.Len())

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &m))
}

func TestMap_EmptyJSON(t *testing.T) {
	var m Map[string, int32]
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestMap_YAMLPreservesOrder(t *testing.T) {
	m := New[string, int32](0)
	m.Set("second", 2)
	m.Set("first", 1)

	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "second: 2\nfirst: 1\n", string(data))

	var back Map[string, int32]
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, []string{"second", "first"}, back.Keys())
}

func TestMap_YAMLIntegerKeys(t *testing.T) {
	m := New[int32, bool](0)
	m.Set(7, true)
	m.Set(3, false)

	data, err := yaml.Marshal(m)
	require.NoError(t, err)

	var back Map[int32, bool]
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, []int32{7, 3}, back.Keys())

	var bad Map[int32, bool]
	assert.Error(t, yaml.Unmarshal([]byte("x: true\n"), &bad))
}
