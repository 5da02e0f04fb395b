//go:build unit

package codec_test

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTrip(t *testing.T) {
	rendered, err := codec.Encode(codec.Protobuf, sampleBook(), testBookResource.Single())
	require.NoError(t, err)

	assert.Equal(t, "application/x-protobuf", rendered.MediaType)
	assert.Equal(t, rendered.Pretty, rendered.Compact)
	assert.Equal(t, map[string]string{"X-Body-Length": "27"}, rendered.Headers(true))

	v, err := codec.Decode(codec.Protobuf, rendered.Compact, testBookResource)
	require.NoError(t, err)
	assert.True(t, record.Equal(sampleBook(), v), "got %#v", record.ToAny(v))
}

func TestBinaryDecode(t *testing.T) {
	t.Run("empty message yields defaults", func(t *testing.T) {
		v, err := codec.Decode(codec.Protobuf, nil, testBookResource)
		require.NoError(t, err)

		want := record.NewMap().
			Set("id", record.Int(0)).
			Set("title", record.String("")).
			Set("author", record.String("")).
			Set("price", record.Float(0)).
			Set("in_stock", record.Bool(false))
		assert.True(t, record.Equal(want, v))
	})

	t.Run("unknown fields are skipped", func(t *testing.T) {
		var b []byte
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendString(b, "ignored")
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, 7)

		v, err := codec.Decode(codec.Protobuf, b, testBookResource)
		require.NoError(t, err)
		id, _ := v.(*record.Map).Get("id")
		assert.Equal(t, record.Int(7), id)
	})

	t.Run("negative int32", func(t *testing.T) {
		var b []byte
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		neg := int64(-5)
		b = protowire.AppendVarint(b, uint64(neg))

		v, err := codec.Decode(codec.Protobuf, b, testBookResource)
		require.NoError(t, err)
		id, _ := v.(*record.Map).Get("id")
		assert.Equal(t, record.Int(-5), id)
	})

	t.Run("malformed input", func(t *testing.T) {
		tests := map[string][]byte{
			"truncated varint": {0x08, 0xff},
			"truncated string": {0x12, 0x05, 'a'},
			"wrong wire type":  protowire.AppendVarint(protowire.AppendTag(nil, 2, protowire.VarintType), 1),
			"invalid utf8":     protowire.AppendBytes(protowire.AppendTag(nil, 2, protowire.BytesType), []byte{0xff, 0xfe}),
		}
		for name, body := range tests {
			_, err := codec.Decode(codec.Protobuf, body, testBookResource)
			require.Error(t, err, name)
			assert.True(t, codec.IsKind(err, codec.KindInvalidBinary), name)

			var cerr *codec.Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "invalid_protobuf", cerr.Code())
		}
	})
}

func TestDropUnset(t *testing.T) {
	v, err := codec.Decode(codec.Protobuf, nil, testRentalResource)
	require.NoError(t, err)

	v = codec.DropUnset(v, testRentalResource.Binary)
	m := v.(*record.Map)
	_, ok := m.Get("end_time")
	assert.False(t, ok)
	bike, ok := m.Get("bike_id")
	assert.True(t, ok)
	assert.Equal(t, record.String(""), bike)
}

func TestBinaryEncode(t *testing.T) {
	t.Run("null optional field is omitted", func(t *testing.T) {
		rental := record.NewMap().
			Set("id", record.Int(1)).
			Set("bike_id", record.String("bike-1")).
			Set("end_time", record.Null{}).
			Set("price_eur", record.Float(2.5))
		rendered, err := codec.Encode(codec.Protobuf, rental, testRentalResource.Single())
		require.NoError(t, err)

		back, err := codec.Decode(codec.Protobuf, rendered.Compact, testRentalResource)
		require.NoError(t, err)
		back = codec.DropUnset(back, testRentalResource.Binary)

		want := record.NewMap().
			Set("id", record.Int(1)).
			Set("bike_id", record.String("bike-1")).
			Set("price_eur", record.Float(2.5))
		assert.True(t, record.Equal(want, back), "got %#v", record.ToAny(back))
	})

	t.Run("numeric strings are accepted", func(t *testing.T) {
		in := record.NewMap().Set("id", record.String("12")).Set("price", record.String("3.5"))
		rendered, err := codec.Encode(codec.Protobuf, in, testBookResource.Single())
		require.NoError(t, err)

		back, err := codec.Decode(codec.Protobuf, rendered.Compact, testBookResource)
		require.NoError(t, err)
		m := back.(*record.Map)
		id, _ := m.Get("id")
		price, _ := m.Get("price")
		assert.Equal(t, record.Int(12), id)
		assert.Equal(t, record.Float(3.5), price)
	})

	t.Run("field errors name the field", func(t *testing.T) {
		tests := map[string]*record.Map{
			"id":       record.NewMap().Set("id", record.String("abc")),
			"price":    record.NewMap().Set("price", record.NewMap()),
			"in_stock": record.NewMap().Set("in_stock", record.String("yes")),
			"title":    record.NewMap().Set("title", record.Int(5)),
		}
		for field, in := range tests {
			_, err := codec.Encode(codec.Protobuf, in, testBookResource.Single())
			require.Error(t, err, field)
			assert.True(t, codec.IsKind(err, codec.KindInvalidPayload), field)
			assert.Contains(t, err.Error(), "Failed to parse "+field+" field: ", field)
		}
	})

	t.Run("out of range id", func(t *testing.T) {
		_, err := codec.Encode(codec.Protobuf, record.NewMap().Set("id", record.Int(1<<40)), testBookResource.Single())
		require.Error(t, err)
		assert.True(t, codec.IsKind(err, codec.KindInvalidPayload))
	})

	t.Run("lists are rejected", func(t *testing.T) {
		_, err := codec.Encode(codec.Protobuf, record.List{sampleBook()}, testBookResource.Collection())
		require.Error(t, err)
		assert.True(t, codec.IsKind(err, codec.KindUnsupportedPayload))
		assert.Equal(t, "Protobuf conversion requires a single object payload", err.Error())
	})
}
