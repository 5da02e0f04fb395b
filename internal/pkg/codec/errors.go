package codec

import (
	"errors"
)

type Kind int

const (
	KindUnsupportedMediaType Kind = iota + 1
	KindNotAcceptable
	KindInvalidTarget
	KindUnsupportedPayload
	KindInvalidJSON
	KindInvalidXML
	KindUnsafeXML
	KindInvalidXMLFieldType
	KindInvalidYAML
	KindInvalidBinary
	KindInvalidPayload
)

const (
	msgContentTypeRequired = "Content-Type header required"
	msgUnsupportedMedia    = "Unsupported Media Type"
	msgNotAcceptable       = "Not Acceptable"
	msgInvalidTarget       = "to must be 'json', 'xml', 'yaml', or 'protobuf'"
	msgUnsafeXML           = "XML DTDs and entities are not supported"
	msgXMLFieldTypes       = "XML payload has invalid field types"
	msgYAMLShape           = "YAML payload must decode to an object or list"
	msgXMLPayloadType      = "Unsupported payload type for XML conversion"
	msgBinarySingleObject  = "Protobuf conversion requires a single object payload"
)

// Error is returned by every negotiation, decode and encode failure.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Code is the machine-readable tag rendered as "error" in structured bodies.
// Negotiation and shape failures have no code and render as plain details.
func (e *Error) Code() string {
	switch e.Kind {
	case KindInvalidJSON:
		return "invalid_json"
	case KindInvalidXML, KindUnsafeXML, KindInvalidXMLFieldType:
		return "invalid_xml"
	case KindInvalidYAML:
		return "invalid_yaml"
	case KindInvalidBinary:
		return "invalid_protobuf"
	case KindInvalidPayload:
		return "invalid_payload"
	default:
		return ""
	}
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Message: cause.Error(), cause: cause}
}

// NewPayloadError reports a decoded document whose shape the caller cannot use.
func NewPayloadError(kind Kind, msg string) error {
	return newError(kind, msg)
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
