//go:build unit

package codec_test

import (
	"strconv"
	"testing"

	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONDecode(t *testing.T) {
	t.Run("keeps key order and number kinds", func(t *testing.T) {
		v, err := codec.Decode(codec.JSON, []byte(`{"title":"Dune","id":3,"price":9.5,"tags":["a",null],"in_stock":false}`), codec.Resource{})
		require.NoError(t, err)

		want := record.NewMap().
			Set("title", record.String("Dune")).
			Set("id", record.Int(3)).
			Set("price", record.Float(9.5)).
			Set("tags", record.List{record.String("a"), record.Null{}}).
			Set("in_stock", record.Bool(false))
		assert.True(t, record.Equal(want, v), "got %#v", record.ToAny(v))
	})

	t.Run("exponent is a float", func(t *testing.T) {
		v, err := codec.Decode(codec.JSON, []byte(`[1e2, 7]`), codec.Resource{})
		require.NoError(t, err)
		assert.True(t, record.Equal(record.List{record.Float(100), record.Int(7)}, v))
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, body := range []string{`{"id":`, ``, `{"id":1}}`, `{"id" 1}`, `{"a":1} {"b":2}`} {
			_, err := codec.Decode(codec.JSON, []byte(body), codec.Resource{})
			require.Error(t, err, body)
			assert.True(t, codec.IsKind(err, codec.KindInvalidJSON), body)

			var cerr *codec.Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "invalid_json", cerr.Code())
			assert.NotEmpty(t, cerr.Message)
		}
	})
}

func TestJSONEncode(t *testing.T) {
	rendered, err := codec.Encode(codec.JSON, sampleBook(), codec.EncodeOptions{})
	require.NoError(t, err)

	compact := `{"id":1,"title":"1984","author":"Orwell","price":8.99,"in_stock":true}`
	pretty := "{\n  \"id\": 1,\n  \"title\": \"1984\",\n  \"author\": \"Orwell\",\n  \"price\": 8.99,\n  \"in_stock\": true\n}"

	assert.Equal(t, "application/json", rendered.MediaType)
	assert.Equal(t, compact, string(rendered.Body(false)))
	assert.Equal(t, pretty, string(rendered.Body(true)))

	headers := rendered.Headers(false)
	assert.Equal(t, strconv.Itoa(len(pretty)), headers["X-Pretty-Length"])
	assert.Equal(t, strconv.Itoa(len(compact)), headers["X-Compact-Length"])
	assert.Equal(t, strconv.Itoa(len(compact)), headers["X-Body-Length"])
	assert.Equal(t, strconv.Itoa(len(pretty)-len(compact)), headers["X-Length-Diff"])
	assert.Equal(t, strconv.Itoa(len(pretty)), rendered.Headers(true)["X-Body-Length"])
}

func TestJSONEncodeScalars(t *testing.T) {
	tests := []struct {
		name string
		in   record.Value
		want string
	}{
		{name: "integral float keeps decimal point", in: record.Float(12), want: "12.0"},
		{name: "large float uses exponent", in: record.Float(1e16), want: "1e+16"},
		{name: "small float uses exponent", in: record.Float(0.00001), want: "1e-05"},
		{name: "plain float", in: record.Float(0.25), want: "0.25"},
		{name: "non-ascii is not escaped", in: record.String("Ünïcode <&>"), want: `"Ünïcode <&>"`},
		{name: "control characters", in: record.String("a\nb\x01"), want: `"a\nb\u0001"`},
		{name: "empty containers", in: record.NewMap().Set("a", record.List{}).Set("b", record.NewMap()), want: `{"a":[],"b":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered, err := codec.Encode(codec.JSON, tt.in, codec.EncodeOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(rendered.Compact))
		})
	}
}
