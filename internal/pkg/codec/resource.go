package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"bookride-api/internal/pkg/record"
)

// Namespace is injected into XML output for resources that carry one.
type Namespace struct {
	Prefix string
	URI    string
}

// Coercer converts a stringly XML leaf into its schema type.
type Coercer func(record.Value) (record.Value, error)

type FieldCoercer struct {
	Field  string
	Coerce Coercer
}

// Resource describes one resource kind to the codecs.
type Resource struct {
	Root      string
	Namespace *Namespace
	Coercers  []FieldCoercer
	Binary    BinarySchema
}

// Single returns the options for rendering one record of this kind.
func (r Resource) Single() EncodeOptions {
	return EncodeOptions{Root: r.Root, Item: r.Root, Namespace: r.Namespace, Binary: r.Binary}
}

// Collection returns the options for rendering a list of this kind.
func (r Resource) Collection() EncodeOptions {
	return EncodeOptions{Root: r.Root + "s", Item: r.Root, Namespace: r.Namespace, Binary: r.Binary}
}

var errNotNumber = errors.New("value is not numeric")

func CoerceInt(v record.Value) (record.Value, error) {
	switch x := v.(type) {
	case record.Int:
		return x, nil
	case record.Bool:
		if x {
			return record.Int(1), nil
		}
		return record.Int(0), nil
	case record.Float:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return nil, errNotNumber
		}
		return record.Int(int64(x)), nil
	case record.String:
		n, err := strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
		if err != nil {
			return nil, err
		}
		return record.Int(n), nil
	default:
		return nil, errNotNumber
	}
}

func CoerceFloat(v record.Value) (record.Value, error) {
	switch x := v.(type) {
	case record.Float:
		return x, nil
	case record.Int:
		return record.Float(x), nil
	case record.Bool:
		if x {
			return record.Float(1), nil
		}
		return record.Float(0), nil
	case record.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		if err != nil {
			return nil, err
		}
		return record.Float(f), nil
	default:
		return nil, errNotNumber
	}
}

// CoerceBool never fails: only "true" and "1" in any case are true.
func CoerceBool(v record.Value) (record.Value, error) {
	switch x := v.(type) {
	case record.Bool:
		return x, nil
	case record.Int:
		return record.Bool(x == 1), nil
	case record.String:
		s := strings.ToLower(string(x))
		return record.Bool(s == "true" || s == "1"), nil
	default:
		return record.Bool(false), nil
	}
}

// CoerceString keeps null as null and renders other scalars as text.
func CoerceString(v record.Value) (record.Value, error) {
	switch x := v.(type) {
	case record.Null, record.String:
		return x, nil
	case record.Int:
		return record.String(strconv.FormatInt(int64(x), 10)), nil
	case record.Float:
		return record.String(formatFloat(float64(x))), nil
	case record.Bool:
		return record.String(strconv.FormatBool(bool(x))), nil
	default:
		return nil, fmt.Errorf("cannot convert %s to string", record.TypeName(v))
	}
}

// formatFloat prints the shortest round-tripping form, always with a
// decimal point or exponent so floats stay distinguishable from integers.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
