package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"bookride-api/internal/pkg/record"
)

const (
	yamlIndent = 2
	// bounds alias expansion so a small document cannot unfold into a huge tree
	yamlNodeBudget = 100_000
)

type yamlCodec struct{}

func (yamlCodec) Format() Format { return YAML }

func (yamlCodec) Decode(body []byte, _ Resource) (record.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(body))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, newError(KindInvalidYAML, msgYAMLShape)
		}
		return nil, wrapError(KindInvalidYAML, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, newError(KindInvalidYAML, "expected a single document in the stream")
	}

	conv := &yamlConverter{budget: yamlNodeBudget}
	v, err := conv.value(&doc)
	if err != nil {
		return nil, wrapError(KindInvalidYAML, err)
	}
	switch v.(type) {
	case *record.Map, record.List:
		return v, nil
	default:
		return nil, newError(KindInvalidYAML, msgYAMLShape)
	}
}

type yamlConverter struct {
	budget int
}

func (c *yamlConverter) value(n *yaml.Node) (record.Value, error) {
	c.budget--
	if c.budget < 0 {
		return nil, errors.New("document contains excessive aliasing")
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return record.Null{}, nil
		}
		return c.value(n.Content[0])
	case yaml.AliasNode:
		return c.value(n.Alias)
	case yaml.SequenceNode:
		out := make(record.List, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.value(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := record.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, valNode := n.Content[i], n.Content[i+1]
			if key.ShortTag() == "!!merge" {
				if err := c.merge(out, valNode); err != nil {
					return nil, err
				}
				continue
			}
			k, err := c.key(key)
			if err != nil {
				return nil, err
			}
			v, err := c.value(valNode)
			if err != nil {
				return nil, err
			}
			out.Set(k, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	default:
		return nil, fmt.Errorf("unsupported YAML node at line %d", n.Line)
	}
}

// merge applies "<<" keys; explicit keys already set win.
func (c *yamlConverter) merge(dst *record.Map, n *yaml.Node) error {
	src, err := c.value(n)
	if err != nil {
		return err
	}
	sources := record.List{src}
	if list, ok := src.(record.List); ok {
		sources = list
	}
	for _, s := range sources {
		m, ok := s.(*record.Map)
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
		}
		m.Range(func(k string, v record.Value) bool {
			if _, exists := dst.Get(k); !exists {
				dst.Set(k, v)
			}
			return true
		})
	}
	return nil
}

func (c *yamlConverter) key(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping keys must be scalars", n.Line)
	}
	return n.Value, nil
}

func scalarValue(n *yaml.Node) (record.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return record.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return record.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			var f float64
			if ferr := n.Decode(&f); ferr != nil {
				return nil, err
			}
			return record.Float(f), nil
		}
		return record.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return record.Float(f), nil
	default:
		return record.String(n.Value), nil
	}
}

func (yamlCodec) Encode(v record.Value, _ EncodeOptions) (Rendered, error) {
	node, err := yamlNode(v)
	if err != nil {
		return Rendered{}, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(node); err != nil {
		return Rendered{}, err
	}
	if err := enc.Close(); err != nil {
		return Rendered{}, err
	}
	body := buf.Bytes()
	return textRendered(YAML, body, body), nil
}

// yaml11Plain lists strings a YAML 1.1 reader resolves to bool or null.
var yaml11Plain = map[string]struct{}{
	"": {}, "~": {}, "null": {}, "true": {}, "false": {},
	"y": {}, "n": {}, "yes": {}, "no": {}, "on": {}, "off": {},
}

func yamlString(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if _, ok := yaml11Plain[strings.ToLower(s)]; ok {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func yamlNode(v record.Value) (*yaml.Node, error) {
	scalar := func(tag, value string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	}

	switch x := v.(type) {
	case record.Null, nil:
		return scalar("!!null", "null"), nil
	case record.Bool:
		return scalar("!!bool", strconv.FormatBool(bool(x))), nil
	case record.Int:
		return scalar("!!int", strconv.FormatInt(int64(x), 10)), nil
	case record.Float:
		return scalar("!!float", yamlFloat(float64(x))), nil
	case record.String:
		return yamlString(string(x)), nil
	case record.List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case *record.Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var err error
		x.Range(func(k string, item record.Value) bool {
			var child *yaml.Node
			if child, err = yamlNode(item); err != nil {
				return false
			}
			n.Content = append(n.Content, yamlString(k), child)
			return true
		})
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	default:
		return formatFloat(f)
	}
}
