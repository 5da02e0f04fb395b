// Package record holds the format-agnostic value tree every codec decodes
// into and encodes from. Maps keep insertion order so re-encoding a decoded
// payload reproduces its field order.
package record

import (
	"fmt"
	"math"
	"sort"
)

type Value interface {
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	Int    int64
	Float  float64
	String string
	List   []Value
)

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}
func (List) isValue()   {}
func (*Map) isValue()   {}

// Map is an insertion-ordered string-keyed mapping.
type Map struct {
	keys   []string
	values map[string]Value
}

func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores v under key. An existing key keeps its original position.
func (m *Map) Set(key string, v Value) *Map {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Equal reports deep equality. Map comparison is order-sensitive.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool, Int, String:
		return a == b
	case Float:
		y, ok := b.(Float)
		if !ok {
			return false
		}
		return x == y || (math.IsNaN(float64(x)) && math.IsNaN(float64(y)))
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !Equal(x.values[k], y.values[k]) {
				return false
			}
		}
		return true
	}
	return false
}

// TypeName names the JSON type of v: object, array, string, integer, number, boolean or null.
func TypeName(v Value) string {
	switch v.(type) {
	case *Map:
		return "object"
	case List:
		return "array"
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "number"
	case Bool:
		return "boolean"
	default:
		return "null"
	}
}

// AsInt reads a numeric value as an integer, truncating floats. Other
// values yield 0.
func AsInt(v Value) int64 {
	switch x := v.(type) {
	case Int:
		return int64(x)
	case Float:
		return int64(x)
	default:
		return 0
	}
}

// AsFloat reads a numeric value as a float. Other values yield 0.
func AsFloat(v Value) float64 {
	switch x := v.(type) {
	case Int:
		return float64(x)
	case Float:
		return float64(x)
	default:
		return 0
	}
}

// FromAny converts plain Go values into a record tree. Keys of plain maps
// are sorted since Go maps carry no order.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case string:
		return String(x), nil
	case []any:
		out := make(List, 0, len(x))
		for _, item := range x {
			rv, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			out = append(out, rv)
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			rv, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, rv)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("record: unsupported type %T", v)
	}
}

// ToAny converts a record tree into plain Go values.
func ToAny(v Value) any {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Int:
		return int64(x)
	case Float:
		return float64(x)
	case String:
		return string(x)
	case List:
		out := make([]any, len(x))
		for i := range x {
			out[i] = ToAny(x[i])
		}
		return out
	case *Map:
		out := make(map[string]any, x.Len())
		x.Range(func(k string, item Value) bool {
			out[k] = ToAny(item)
			return true
		})
		return out
	default:
		return nil
	}
}
