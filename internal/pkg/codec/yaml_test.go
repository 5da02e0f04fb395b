//go:build unit

package codec_test

import (
	"strings"
	"testing"

	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLDecode(t *testing.T) {
	t.Run("mapping keeps order and scalar types", func(t *testing.T) {
		body := "title: Dune\nid: 3\nprice: 9.5\nin_stock: true\nnote: ~\ncode: \"123\"\n"
		v, err := codec.Decode(codec.YAML, []byte(body), codec.Resource{})
		require.NoError(t, err)

		want := record.NewMap().
			Set("title", record.String("Dune")).
			Set("id", record.Int(3)).
			Set("price", record.Float(9.5)).
			Set("in_stock", record.Bool(true)).
			Set("note", record.Null{}).
			Set("code", record.String("123"))
		assert.True(t, record.Equal(want, v), "got %#v", record.ToAny(v))
	})

	t.Run("sequence", func(t *testing.T) {
		v, err := codec.Decode(codec.YAML, []byte("- id: 1\n- id: 2\n"), codec.Resource{})
		require.NoError(t, err)

		want := record.List{
			record.NewMap().Set("id", record.Int(1)),
			record.NewMap().Set("id", record.Int(2)),
		}
		assert.True(t, record.Equal(want, v))
	})

	t.Run("merge keys", func(t *testing.T) {
		body := "base: &b\n  a: 1\n  b: 2\nitem:\n  <<: *b\n  b: 3\n"
		v, err := codec.Decode(codec.YAML, []byte(body), codec.Resource{})
		require.NoError(t, err)

		item, ok := v.(*record.Map).Get("item")
		require.True(t, ok)
		want := record.NewMap().Set("a", record.Int(1)).Set("b", record.Int(3))
		assert.True(t, record.Equal(want, item), "got %#v", record.ToAny(item))
	})

	t.Run("non-container documents are rejected", func(t *testing.T) {
		for _, body := range []string{"42", "just text", ""} {
			_, err := codec.Decode(codec.YAML, []byte(body), codec.Resource{})
			require.Error(t, err, body)
			assert.True(t, codec.IsKind(err, codec.KindInvalidYAML), body)
			assert.Equal(t, "YAML payload must decode to an object or list", err.Error(), body)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := codec.Decode(codec.YAML, []byte("a: [1, 2\n"), codec.Resource{})
		require.Error(t, err)
		assert.True(t, codec.IsKind(err, codec.KindInvalidYAML))

		var cerr *codec.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "invalid_yaml", cerr.Code())
	})

	t.Run("alias bomb is bounded", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("a: &a [x, x, x, x, x, x, x, x, x, x]\n")
		prev := "a"
		for _, name := range []string{"b", "c", "d", "e", "f", "g"} {
			b.WriteString(name + ": &" + name + " [")
			for i := 0; i < 10; i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString("*" + prev)
			}
			b.WriteString("]\n")
			prev = name
		}
		_, err := codec.Decode(codec.YAML, []byte(b.String()), codec.Resource{})
		require.Error(t, err)
		assert.True(t, codec.IsKind(err, codec.KindInvalidYAML))
	})
}

func TestYAMLEncode(t *testing.T) {
	v := record.NewMap().
		Set("title", record.String("Dune")).
		Set("price", record.Float(12)).
		Set("code", record.String("123")).
		Set("tags", record.List{record.String("a")})

	rendered, err := codec.Encode(codec.YAML, v, codec.EncodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, "application/x-yaml", rendered.MediaType)
	assert.Equal(t, rendered.Pretty, rendered.Compact)
	assert.True(t, strings.HasPrefix(string(rendered.Pretty), "title: Dune\nprice: 12.0\n"))

	headers := rendered.Headers(true)
	assert.Equal(t, "0", headers["X-Length-Diff"])

	back, err := codec.Decode(codec.YAML, rendered.Pretty, codec.Resource{})
	require.NoError(t, err)
	assert.True(t, record.Equal(v, back), "got %#v", record.ToAny(back))
}

func TestYAMLEncode_BoolLikeStrings(t *testing.T) {
	v := record.NewMap().
		Set("bike_id", record.String("no")).
		Set("answer", record.String("Yes")).
		Set("switch", record.String("off")).
		Set("marker", record.String("~")).
		Set("blank", record.String("")).
		Set("on", record.String("noon"))

	rendered, err := codec.Encode(codec.YAML, v, codec.EncodeOptions{})
	require.NoError(t, err)

	body := string(rendered.Pretty)
	for _, line := range []string{
		`bike_id: "no"`,
		`answer: "Yes"`,
		`switch: "off"`,
		`marker: "~"`,
		`blank: ""`,
		`"on": noon`,
	} {
		assert.Contains(t, body, line+"\n")
	}

	back, err := codec.Decode(codec.YAML, rendered.Pretty, codec.Resource{})
	require.NoError(t, err)
	assert.True(t, record.Equal(v, back), "got %#v", record.ToAny(back))
}
