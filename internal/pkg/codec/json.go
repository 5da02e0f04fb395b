package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"bookride-api/internal/pkg/record"
)

type jsonCodec struct{}

func (jsonCodec) Format() Format { return JSON }

func (jsonCodec) Decode(body []byte, _ Resource) (record.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	v, err := readJSON(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, wrapError(KindInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newError(KindInvalidJSON, "extra data after JSON value")
	}
	return v, nil
}

// readJSON walks the token stream so object key order survives decoding.
func readJSON(dec *json.Decoder) (record.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := record.NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				v, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			list := record.List{}
			for dec.More() {
				v, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case json.Number:
		return parseNumber(t)
	case string:
		return record.String(t), nil
	case bool:
		return record.Bool(t), nil
	case nil:
		return record.Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseNumber(n json.Number) (record.Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return record.Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return record.Float(f), nil
}

func (jsonCodec) Encode(v record.Value, _ EncodeOptions) (Rendered, error) {
	var pretty, compact bytes.Buffer
	if err := writeJSON(&pretty, v, "  ", 0); err != nil {
		return Rendered{}, err
	}
	if err := writeJSON(&compact, v, "", 0); err != nil {
		return Rendered{}, err
	}
	return textRendered(JSON, pretty.Bytes(), compact.Bytes()), nil
}

// writeJSON emits indented output when indent is set, and the minimal
// separators otherwise. Non-ASCII text is written unescaped.
func writeJSON(buf *bytes.Buffer, v record.Value, indent string, depth int) error {
	newline := func(d int) {
		if indent == "" {
			return
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indent, d))
	}
	keySep := ":"
	if indent != "" {
		keySep = ": "
	}

	switch x := v.(type) {
	case record.Null, nil:
		buf.WriteString("null")
	case record.Bool:
		buf.WriteString(strconv.FormatBool(bool(x)))
	case record.Int:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case record.Float:
		buf.WriteString(formatFloat(float64(x)))
	case record.String:
		writeJSONString(buf, string(x))
	case record.List:
		if len(x) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(depth + 1)
			if err := writeJSON(buf, item, indent, depth+1); err != nil {
				return err
			}
		}
		newline(depth)
		buf.WriteByte(']')
	case *record.Map:
		if x.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		var err error
		i := 0
		x.Range(func(key string, item record.Value) bool {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			newline(depth + 1)
			writeJSONString(buf, key)
			buf.WriteString(keySep)
			err = writeJSON(buf, item, indent, depth+1)
			return err == nil
		})
		if err != nil {
			return err
		}
		newline(depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
	return nil
}

const hexDigits = "0123456789abcdef"

func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r < 0x20:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[r>>4])
			buf.WriteByte(hexDigits[r&0xf])
		case r == utf8.RuneError && size == 1:
			buf.WriteString(`�`)
		default:
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}
