//go:build unit

package record_test

import (
	"testing"

	"bookride-api/internal/pkg/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		m := record.NewMap().
			Set("title", record.String("Dune")).
			Set("id", record.Int(1)).
			Set("author", record.String("Herbert"))

		assert.Equal(t, []string{"title", "id", "author"}, m.Keys())
	})

	t.Run("overwrite keeps original position", func(t *testing.T) {
		m := record.NewMap().Set("a", record.Int(1)).Set("b", record.Int(2))
		m.Set("a", record.Int(3))

		assert.Equal(t, []string{"a", "b"}, m.Keys())
		v, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, record.Int(3), v)
	})

	t.Run("delete removes key", func(t *testing.T) {
		m := record.NewMap().Set("a", record.Int(1)).Set("b", record.Int(2))
		m.Delete("a")
		m.Delete("missing")

		assert.Equal(t, []string{"b"}, m.Keys())
		assert.Equal(t, 1, m.Len())
	})
}

func TestEqual(t *testing.T) {
	a := record.NewMap().Set("x", record.List{record.Int(1), record.Null{}})
	b := record.NewMap().Set("x", record.List{record.Int(1), record.Null{}})
	assert.True(t, record.Equal(a, b))

	reordered := record.NewMap().Set("y", record.Int(1)).Set("x", record.Int(2))
	ordered := record.NewMap().Set("x", record.Int(2)).Set("y", record.Int(1))
	assert.False(t, record.Equal(reordered, ordered))

	assert.False(t, record.Equal(record.Int(1), record.Float(1)))
}

func TestFromAny(t *testing.T) {
	v, err := record.FromAny(map[string]any{"b": []any{true, 1.5}, "a": "x"})
	require.NoError(t, err)

	m, ok := v.(*record.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, map[string]any{"a": "x", "b": []any{true, 1.5}}, record.ToAny(v))

	_, err = record.FromAny(struct{}{})
	assert.Error(t, err)
}
