// Package codec negotiates media types and converts request and response
// bodies between the wire formats and record values.
package codec

import (
	"strconv"

	"bookride-api/internal/pkg/record"
)

// Codec is the strategy registered for one Format.
type Codec interface {
	Format() Format
	Decode(body []byte, res Resource) (record.Value, error)
	Encode(v record.Value, opts EncodeOptions) (Rendered, error)
}

var codecs = map[Format]Codec{
	JSON:     jsonCodec{},
	XML:      xmlCodec{},
	YAML:     yamlCodec{},
	Protobuf: binaryCodec{},
}

func (f Format) Codec() Codec {
	return codecs[f]
}

func Decode(f Format, body []byte, res Resource) (record.Value, error) {
	return f.Codec().Decode(body, res)
}

func Encode(f Format, v record.Value, opts EncodeOptions) (Rendered, error) {
	return f.Codec().Encode(v, opts)
}

// EncodeOptions controls element naming for XML and field layout for the
// binary format. A list value is written as Root wrapping repeated Item
// elements; a mapping is written as a single Root element.
type EncodeOptions struct {
	Root      string
	Item      string
	Namespace *Namespace
	Binary    BinarySchema
}

const (
	HeaderPrettyLength  = "X-Pretty-Length"
	HeaderCompactLength = "X-Compact-Length"
	HeaderBodyLength    = "X-Body-Length"
	HeaderLengthDiff    = "X-Length-Diff"
)

// SizeHeaders lists every header Rendered.Headers may set.
func SizeHeaders() []string {
	return []string{HeaderPrettyLength, HeaderCompactLength, HeaderBodyLength, HeaderLengthDiff}
}

// Rendered holds both layouts of an encoded body.
type Rendered struct {
	MediaType string
	Pretty    []byte
	Compact   []byte
	sized     bool
}

func (r Rendered) Body(pretty bool) []byte {
	if pretty {
		return r.Pretty
	}
	return r.Compact
}

// Headers returns the size headers for the chosen layout. Binary bodies
// only report their own length.
func (r Rendered) Headers(pretty bool) map[string]string {
	body := r.Body(pretty)
	if !r.sized {
		return map[string]string{HeaderBodyLength: strconv.Itoa(len(body))}
	}
	return map[string]string{
		HeaderPrettyLength:  strconv.Itoa(len(r.Pretty)),
		HeaderCompactLength: strconv.Itoa(len(r.Compact)),
		HeaderBodyLength:    strconv.Itoa(len(body)),
		HeaderLengthDiff:    strconv.Itoa(len(r.Pretty) - len(r.Compact)),
	}
}

func textRendered(f Format, pretty, compact []byte) Rendered {
	return Rendered{MediaType: f.MediaType(), Pretty: pretty, Compact: compact, sized: true}
}
