package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"bookride-api/internal/pkg/record"
)

type ScalarKind int

const (
	Int32 ScalarKind = iota + 1
	Double
	Bool
	String
)

// BinaryField maps a record field to its protobuf field number and type.
// Optional fields decode to the zero value when unset, which for strings is
// the empty-string sentinel removed by DropUnset.
type BinaryField struct {
	Name     string
	Number   protowire.Number
	Kind     ScalarKind
	Optional bool
}

type BinarySchema []BinaryField

func (s BinarySchema) field(num protowire.Number) (BinaryField, bool) {
	for _, f := range s {
		if f.Number == num {
			return f, true
		}
	}
	return BinaryField{}, false
}

func (k ScalarKind) zero() record.Value {
	switch k {
	case Int32:
		return record.Int(0)
	case Double:
		return record.Float(0)
	case Bool:
		return record.Bool(false)
	default:
		return record.String("")
	}
}

func (k ScalarKind) wireType() protowire.Type {
	switch k {
	case Double:
		return protowire.Fixed64Type
	case String:
		return protowire.BytesType
	default:
		return protowire.VarintType
	}
}

type binaryCodec struct{}

func (binaryCodec) Format() Format { return Protobuf }

// Decode yields a mapping holding exactly the schema's fields. Unknown
// fields are skipped; the last occurrence of a repeated scalar wins.
func (binaryCodec) Decode(body []byte, res Resource) (record.Value, error) {
	values := make(map[protowire.Number]record.Value, len(res.Binary))
	b := body
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wrapError(KindInvalidBinary, protowire.ParseError(n))
		}
		b = b[n:]

		f, known := res.Binary.field(num)
		if !known {
			if n = protowire.ConsumeFieldValue(num, typ, b); n < 0 {
				return nil, wrapError(KindInvalidBinary, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		if typ != f.Kind.wireType() {
			return nil, newError(KindInvalidBinary, fmt.Sprintf("wrong wire type for field %s", f.Name))
		}

		var v record.Value
		switch f.Kind {
		case Int32:
			x, m := protowire.ConsumeVarint(b)
			n = m
			v = record.Int(int32(x))
		case Double:
			x, m := protowire.ConsumeFixed64(b)
			n = m
			v = record.Float(math.Float64frombits(x))
		case Bool:
			x, m := protowire.ConsumeVarint(b)
			n = m
			v = record.Bool(x != 0)
		case String:
			x, m := protowire.ConsumeBytes(b)
			n = m
			if m >= 0 && !utf8.Valid(x) {
				return nil, newError(KindInvalidBinary, fmt.Sprintf("invalid UTF-8 in string field %s", f.Name))
			}
			v = record.String(x)
		}
		if n < 0 {
			return nil, wrapError(KindInvalidBinary, protowire.ParseError(n))
		}
		b = b[n:]
		values[num] = v
	}

	out := record.NewMap()
	for _, f := range res.Binary {
		v, ok := values[f.Number]
		if !ok {
			v = f.Kind.zero()
		}
		out.Set(f.Name, v)
	}
	return out, nil
}

// DropUnset removes optional string fields still holding the unset sentinel.
func DropUnset(v record.Value, schema BinarySchema) record.Value {
	m, ok := v.(*record.Map)
	if !ok {
		return v
	}
	for _, f := range schema {
		if !f.Optional || f.Kind != String {
			continue
		}
		if s, ok := m.Get(f.Name); ok && s == record.String("") {
			m.Delete(f.Name)
		}
	}
	return m
}

// Encode writes schema fields in field-number order, omitting default
// values and nulls. Fields outside the schema are ignored.
func (binaryCodec) Encode(v record.Value, opts EncodeOptions) (Rendered, error) {
	m, ok := v.(*record.Map)
	if !ok {
		return Rendered{}, newError(KindUnsupportedPayload, msgBinarySingleObject)
	}

	var b []byte
	for _, f := range opts.Binary {
		val, ok := m.Get(f.Name)
		if !ok {
			continue
		}
		if _, isNull := val.(record.Null); isNull {
			continue
		}
		var err error
		b, err = appendBinaryField(b, f, val)
		if err != nil {
			return Rendered{}, &Error{
				Kind:    KindInvalidPayload,
				Message: fmt.Sprintf("Failed to parse %s field: %s", f.Name, err),
				cause:   err,
			}
		}
	}
	return Rendered{MediaType: Protobuf.MediaType(), Pretty: b, Compact: b}, nil
}

func appendBinaryField(b []byte, f BinaryField, v record.Value) ([]byte, error) {
	switch f.Kind {
	case Int32:
		n, err := binaryInt32(v)
		if err != nil || n == 0 {
			return b, err
		}
		b = protowire.AppendTag(b, f.Number, protowire.VarintType)
		return protowire.AppendVarint(b, uint64(int64(n))), nil
	case Double:
		x, err := binaryDouble(v)
		if err != nil || (x == 0 && !math.Signbit(x)) {
			return b, err
		}
		b = protowire.AppendTag(b, f.Number, protowire.Fixed64Type)
		return protowire.AppendFixed64(b, math.Float64bits(x)), nil
	case Bool:
		x, err := binaryBool(v)
		if err != nil || !x {
			return b, err
		}
		b = protowire.AppendTag(b, f.Number, protowire.VarintType)
		return protowire.AppendVarint(b, 1), nil
	default:
		s, ok := v.(record.String)
		if !ok {
			return b, fmt.Errorf("invalid string value %s", record.TypeName(v))
		}
		if s == "" {
			return b, nil
		}
		b = protowire.AppendTag(b, f.Number, protowire.BytesType)
		return protowire.AppendString(b, string(s)), nil
	}
}

func binaryInt32(v record.Value) (int32, error) {
	var n int64
	switch x := v.(type) {
	case record.Int:
		n = int64(x)
	case record.Float:
		f := float64(x)
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("couldn't parse integer: %s", formatFloat(f))
		}
		n = int64(f)
	case record.String:
		if strings.TrimSpace(string(x)) != string(x) {
			return 0, fmt.Errorf("couldn't parse integer: %q", string(x))
		}
		parsed, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("couldn't parse integer: %q", string(x))
		}
		n = parsed
	default:
		return 0, fmt.Errorf("couldn't parse integer: %s", record.TypeName(v))
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("value out of range: %d", n)
	}
	return int32(n), nil
}

func binaryDouble(v record.Value) (float64, error) {
	switch x := v.(type) {
	case record.Float:
		return float64(x), nil
	case record.Int:
		return float64(x), nil
	case record.String:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0, fmt.Errorf("couldn't parse float: %q", string(x))
		}
		return f, nil
	default:
		return 0, fmt.Errorf("couldn't parse float: %s", record.TypeName(v))
	}
}

var errBoolValue = errors.New("expected true or false without quotes")

func binaryBool(v record.Value) (bool, error) {
	switch x := v.(type) {
	case record.Bool:
		return bool(x), nil
	case record.String:
		switch string(x) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, errBoolValue
}
