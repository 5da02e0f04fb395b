package codec

import (
	"fmt"
	"strings"

	"bookride-api/internal/pkg/record"
)

// normalizeXML turns the raw element tree into a record or list of records
// for res: prefixes and attributes are stripped, the wrapper element is
// resolved and leaf strings are coerced to their schema types.
func normalizeXML(doc record.Value, res Resource) (record.Value, error) {
	value := unwrapXML(stripNamespaces(doc), res.Root)

	payload, err := mappingOrSequence(value, res.Root)
	if err != nil {
		return nil, err
	}
	if len(res.Coercers) == 0 {
		return payload, nil
	}

	if list, ok := payload.(record.List); ok {
		for _, item := range list {
			if err := coerceFields(item.(*record.Map), res.Coercers); err != nil {
				return nil, err
			}
		}
		return list, nil
	}
	if err := coerceFields(payload.(*record.Map), res.Coercers); err != nil {
		return nil, err
	}
	return payload, nil
}

// stripNamespaces drops "@" keys and "ns:" prefixes. Text that sat beside
// attributes collapses into the element value; text mixed with child
// elements is dropped.
func stripNamespaces(v record.Value) record.Value {
	switch x := v.(type) {
	case *record.Map:
		out := record.NewMap()
		var text record.Value
		x.Range(func(k string, item record.Value) bool {
			switch {
			case strings.HasPrefix(k, attrPrefix):
			case k == textKey:
				text = item
			default:
				if _, local, ok := strings.Cut(k, ":"); ok {
					k = local
				}
				out.Set(k, stripNamespaces(item))
			}
			return true
		})
		if out.Len() == 0 {
			if text != nil {
				return text
			}
			return record.Null{}
		}
		return out
	case record.List:
		out := make(record.List, len(x))
		for i, item := range x {
			out[i] = stripNamespaces(item)
		}
		return out
	default:
		return v
	}
}

// unwrapXML resolves which part of the document is the payload. With a
// root tag T it prefers doc[T], then the T+"s" container (or its T child),
// then the whole document. Without one, a single key holding a mapping or
// list is unwrapped.
func unwrapXML(doc record.Value, root string) record.Value {
	m, isMap := doc.(*record.Map)
	if !isMap {
		return doc
	}

	if root != "" {
		if v, ok := m.Get(root); ok {
			return v
		}
		if container, ok := m.Get(root + "s"); ok {
			if cm, ok := container.(*record.Map); ok {
				if v, ok := cm.Get(root); ok {
					return v
				}
			}
			return container
		}
		return doc
	}

	if m.Len() == 1 {
		sole, _ := m.Get(m.Keys()[0])
		switch sole.(type) {
		case *record.Map, record.List:
			return sole
		}
	}
	return doc
}

func mappingOrSequence(v record.Value, root string) (record.Value, error) {
	tag := "object"
	if root != "" {
		tag = "<" + root + ">"
	}

	switch x := v.(type) {
	case record.List:
		for _, item := range x {
			if _, ok := item.(*record.Map); !ok {
				return nil, newError(KindInvalidXML, fmt.Sprintf("XML payload must contain dictionaries under %s", tag))
			}
		}
		return x, nil
	case *record.Map:
		return x, nil
	default:
		return nil, newError(KindInvalidXML, fmt.Sprintf("XML payload must map to %s elements", tag))
	}
}

// coerceFields applies each coercer to a present field; absent fields are
// left for schema validation to report.
func coerceFields(m *record.Map, coercers []FieldCoercer) error {
	for _, c := range coercers {
		v, ok := m.Get(c.Field)
		if !ok {
			continue
		}
		coerced, err := c.Coerce(v)
		if err != nil {
			return &Error{Kind: KindInvalidXMLFieldType, Message: msgXMLFieldTypes, cause: err}
		}
		m.Set(c.Field, coerced)
	}
	return nil
}
