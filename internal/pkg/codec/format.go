package codec

import (
	"strings"
)

type Format int

const (
	JSON Format = iota
	XML
	YAML
	Protobuf
)

// registry order decides Accept ties; it must not change.
var registry = []Format{JSON, XML, YAML, Protobuf}

func Formats() []Format {
	out := make([]Format, len(registry))
	copy(out, registry)
	return out
}

func (f Format) MediaType() string {
	switch f {
	case XML:
		return "application/xml"
	case YAML:
		return "application/x-yaml"
	case Protobuf:
		return "application/x-protobuf"
	default:
		return "application/json"
	}
}

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case YAML:
		return "yaml"
	case Protobuf:
		return "protobuf"
	default:
		return "json"
	}
}

// ParseContentType matches a Content-Type header against the registry,
// ignoring case and any parameters.
func ParseContentType(header string) (Format, error) {
	mediaType, _, _ := strings.Cut(header, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "" {
		return JSON, newError(KindUnsupportedMediaType, msgContentTypeRequired)
	}
	for _, f := range registry {
		if f.MediaType() == mediaType {
			return f, nil
		}
	}
	return JSON, newError(KindUnsupportedMediaType, msgUnsupportedMedia)
}

// NegotiateAccept picks the first registry format that prefixes any listed
// Accept value. Header order is ignored.
func NegotiateAccept(header string) (Format, error) {
	if strings.TrimSpace(header) == "" {
		return JSON, nil
	}

	var accepts []string
	for _, value := range strings.Split(header, ",") {
		if value = strings.ToLower(strings.TrimSpace(value)); value != "" {
			accepts = append(accepts, value)
		}
	}

	for _, f := range registry {
		for _, value := range accepts {
			if strings.HasPrefix(value, f.MediaType()) {
				return f, nil
			}
		}
	}
	for _, value := range accepts {
		if value == "*/*" {
			return JSON, nil
		}
	}
	return JSON, newError(KindNotAcceptable, msgNotAcceptable)
}

// ParseTarget resolves the short format name used by conversion requests.
func ParseTarget(name string) (Format, error) {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, f := range registry {
		if f.String() == target {
			return f, nil
		}
	}
	return JSON, newError(KindInvalidTarget, msgInvalidTarget)
}

// ParsePretty reads the pretty query flag. Anything outside the compact
// spellings, including an absent value, selects pretty output.
func ParsePretty(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false", "0", "no", "compact":
		return false
	default:
		return true
	}
}
