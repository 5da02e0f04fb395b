package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"bookride-api/internal/pkg/record"
)

const (
	xmlHeader   = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
	attrPrefix  = "@"
	textKey     = "#text"
	xmlIndent   = "\t"
	xmlnsPrefix = "xmlns:"
	// xml:space="preserve" keeps leaf text exactly as written; other text
	// is trimmed.
	xmlSpaceAttr     = "xml:space"
	xmlSpacePreserve = "preserve"
)

var unsafeXMLTokens = [][]byte{
	[]byte("<!DOCTYPE"),
	[]byte("<!ENTITY"),
	[]byte("<![CDATA["),
}

type xmlCodec struct{}

func (xmlCodec) Format() Format { return XML }

// Decode rejects DTDs, entity declarations and CDATA before parsing, then
// builds the attribute/text tree and normalizes it for res.
func (xmlCodec) Decode(body []byte, res Resource) (record.Value, error) {
	if err := checkUnsafeXML(body); err != nil {
		return nil, err
	}
	doc, err := parseXMLTree(body)
	if err != nil {
		return nil, wrapError(KindInvalidXML, err)
	}
	return normalizeXML(doc, res)
}

func checkUnsafeXML(body []byte) error {
	upper := bytes.ToUpper(body)
	for _, token := range unsafeXMLTokens {
		if bytes.Contains(upper, token) {
			return newError(KindUnsafeXML, msgUnsafeXML)
		}
	}
	return nil
}

type xmlFrame struct {
	name     string
	attrs    *record.Map
	children *record.Map
	repeated map[string]bool
	text     strings.Builder
	preserve bool
}

func (f *xmlFrame) addChild(name string, v record.Value) {
	existing, ok := f.children.Get(name)
	if !ok {
		f.children.Set(name, v)
		return
	}
	if f.repeated[name] {
		f.children.Set(name, append(existing.(record.List), v))
		return
	}
	f.repeated[name] = true
	f.children.Set(name, record.List{existing, v})
}

func (f *xmlFrame) value() record.Value {
	text := strings.TrimSpace(f.text.String())
	if f.attrs.Len() == 0 && f.children.Len() == 0 {
		if f.preserve {
			return record.String(f.text.String())
		}
		if text == "" {
			return record.Null{}
		}
		return record.String(text)
	}
	out := record.NewMap()
	f.attrs.Range(func(k string, v record.Value) bool {
		out.Set(k, v)
		return true
	})
	f.children.Range(func(k string, v record.Value) bool {
		out.Set(k, v)
		return true
	})
	if text != "" {
		out.Set(textKey, record.String(text))
	}
	return out
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// parseXMLTree produces {root: value}. Attributes become "@name" keys, text
// beside attributes or children becomes "#text", repeated siblings become
// lists and empty elements become null. xml:space is inherited and consumed
// rather than kept as an attribute.
func parseXMLTree(body []byte) (record.Value, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = true

	var (
		stack []*xmlFrame
		root  *record.Map
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, errors.New("junk after document element")
			}
			frame := &xmlFrame{
				name:     qualified(t.Name),
				attrs:    record.NewMap(),
				children: record.NewMap(),
				repeated: map[string]bool{},
			}
			if len(stack) > 0 {
				frame.preserve = stack[len(stack)-1].preserve
			}
			for _, a := range t.Attr {
				if qualified(a.Name) == xmlSpaceAttr {
					frame.preserve = a.Value == xmlSpacePreserve
					continue
				}
				frame.attrs.Set(attrPrefix+qualified(a.Name), record.String(a.Value))
			}
			stack = append(stack, frame)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element </%s>", qualified(t.Name))
			}
			frame := stack[len(stack)-1]
			if name := qualified(t.Name); name != frame.name {
				return nil, fmt.Errorf("mismatched tag: expected </%s>, got </%s>", frame.name, name)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root = record.NewMap().Set(frame.name, frame.value())
				continue
			}
			stack[len(stack)-1].addChild(frame.name, frame.value())
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, errors.New("text outside document element")
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)
		case xml.Directive:
			return nil, errors.New("directives are not supported")
		case xml.Comment, xml.ProcInst:
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].name)
	}
	if root == nil {
		return nil, errors.New("no element found")
	}
	return root, nil
}

func (xmlCodec) Encode(v record.Value, opts EncodeOptions) (Rendered, error) {
	pretty, err := writeXMLDocument(v, opts, true)
	if err != nil {
		return Rendered{}, err
	}
	compact, err := writeXMLDocument(v, opts, false)
	if err != nil {
		return Rendered{}, err
	}
	return textRendered(XML, pretty, compact), nil
}

func writeXMLDocument(v record.Value, opts EncodeOptions, pretty bool) ([]byte, error) {
	w := &xmlWriter{pretty: pretty}
	nsAttr := ""
	if opts.Namespace != nil {
		w.prefix = opts.Namespace.Prefix + ":"
		nsAttr = " " + xmlnsPrefix + opts.Namespace.Prefix + `="` + escapeXMLAttr(opts.Namespace.URI) + `"`
	}
	w.buf.WriteString(xmlHeader)

	switch x := v.(type) {
	case *record.Map:
		root := x
		if opts.Namespace != nil {
			root = record.NewMap().Set(attrPrefix+xmlnsPrefix+opts.Namespace.Prefix, record.String(opts.Namespace.URI))
			x.Range(func(k string, item record.Value) bool {
				root.Set(k, item)
				return true
			})
		}
		if err := w.single(w.prefix+opts.Root, root, 0); err != nil {
			return nil, err
		}
	case record.List:
		item := opts.Item
		if item == "" {
			item = opts.Root
		}
		if !validXMLName(opts.Root) {
			return nil, newError(KindUnsupportedPayload, fmt.Sprintf("Invalid XML element name: %q", opts.Root))
		}
		w.buf.WriteString("<" + opts.Root + nsAttr + ">")
		if len(x) > 0 {
			w.newline()
			if err := w.element(w.prefix+item, x, 1); err != nil {
				return nil, err
			}
			w.newline()
		}
		w.buf.WriteString("</" + opts.Root + ">")
	default:
		return nil, newError(KindUnsupportedPayload, msgXMLPayloadType)
	}
	return w.buf.Bytes(), nil
}

type xmlWriter struct {
	buf    bytes.Buffer
	pretty bool
	prefix string
}

func (w *xmlWriter) indent(depth int) {
	if w.pretty {
		w.buf.WriteString(strings.Repeat(xmlIndent, depth))
	}
}

func (w *xmlWriter) newline() {
	if w.pretty {
		w.buf.WriteByte('\n')
	}
}

// element writes name once per list item and once otherwise.
func (w *xmlWriter) element(name string, v record.Value, depth int) error {
	if list, ok := v.(record.List); ok {
		for i, item := range list {
			if _, nested := item.(record.List); nested {
				return newError(KindUnsupportedPayload, msgXMLPayloadType)
			}
			if i > 0 {
				w.newline()
			}
			if err := w.single(name, item, depth); err != nil {
				return err
			}
		}
		return nil
	}
	return w.single(name, v, depth)
}

func (w *xmlWriter) single(name string, v record.Value, depth int) error {
	if !validXMLName(name) {
		return newError(KindUnsupportedPayload, fmt.Sprintf("Invalid XML element name: %q", name))
	}
	w.indent(depth)
	m, isMap := v.(*record.Map)
	if !isMap {
		w.buf.WriteString("<" + name)
		if needsPreserve(v) {
			w.buf.WriteString(" " + xmlSpaceAttr + `="` + xmlSpacePreserve + `"`)
		}
		w.buf.WriteString(">")
		w.buf.WriteString(escapeXMLText(xmlScalar(v)))
		w.buf.WriteString("</" + name + ">")
		return nil
	}

	var (
		text     *string
		children []string
	)
	w.buf.WriteString("<" + name)
	for _, k := range m.Keys() {
		val, _ := m.Get(k)
		switch {
		case k == textKey:
			s := xmlScalar(val)
			text = &s
		case strings.HasPrefix(k, attrPrefix):
			attr := strings.TrimPrefix(k, attrPrefix)
			if !validXMLName(attr) {
				return newError(KindUnsupportedPayload, fmt.Sprintf("Invalid XML attribute name: %q", attr))
			}
			w.buf.WriteString(" " + attr + `="` + escapeXMLAttr(xmlScalar(val)) + `"`)
		default:
			if list, ok := val.(record.List); ok && len(list) == 0 {
				continue
			}
			children = append(children, k)
		}
	}
	w.buf.WriteByte('>')

	if len(children) > 0 {
		w.newline()
		for i, k := range children {
			val, _ := m.Get(k)
			if i > 0 {
				w.newline()
			}
			if err := w.element(w.prefix+k, val, depth+1); err != nil {
				return err
			}
		}
		w.newline()
	}
	if text != nil {
		w.buf.WriteString(escapeXMLText(*text))
	}
	if len(children) > 0 {
		w.indent(depth)
	}
	w.buf.WriteString("</" + name + ">")
	return nil
}

// needsPreserve reports whether a string would not survive trimming on
// decode. The empty string is included so it does not come back as null.
func needsPreserve(v record.Value) bool {
	s, ok := v.(record.String)
	if !ok {
		return false
	}
	return s == "" || strings.TrimSpace(string(s)) != string(s)
}

func xmlScalar(v record.Value) string {
	switch x := v.(type) {
	case record.String:
		return string(x)
	case record.Int:
		return strconv.FormatInt(int64(x), 10)
	case record.Float:
		return formatFloat(float64(x))
	case record.Bool:
		return strconv.FormatBool(bool(x))
	default:
		return ""
	}
}

var (
	xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escapeXMLText(s string) string { return xmlTextEscaper.Replace(s) }
func escapeXMLAttr(s string) string { return xmlAttrEscaper.Replace(s) }

func validXMLName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if r != '_' && r != ':' && !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if r != '_' && r != ':' && r != '-' && r != '.' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return utf8.ValidString(name)
}
