// Package schema validates decoded records against declarative field
// schemas. Numeric bounds and string rules are expressed as validator tags.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"bookride-api/internal/pkg/record"
)

type Type int

const (
	Integer Type = iota + 1
	Number
	String
	Boolean
	DateTime
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "string"
	}
}

// Field describes one property. Rule is a validator tag such as "gt=0".
type Field struct {
	Name     string
	Type     Type
	Required bool
	Nullable bool
	Rule     string
}

type Schema struct {
	Name   string
	Fields []Field
}

// ValidationError names the offending property path. Path is empty when the
// document itself has the wrong shape.
type ValidationError struct {
	Path    []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const dateTimeRule = "datetime_tz"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(dateTimeRule, isZonedDateTime); err != nil {
		panic(err)
	}
	return v
}

func isZonedDateTime(fl validator.FieldLevel) bool {
	_, err := ParseDateTime(fl.Field().String())
	return err == nil
}

// ParseDateTime accepts RFC 3339 timestamps and rejects those without a
// zone designator.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.Replace(s, " ", "T", 1))
}

// Validate reports the first violation: missing required properties in
// declared order, then property types, then rules.
func (s Schema) Validate(v record.Value) error {
	m, ok := v.(*record.Map)
	if !ok {
		return &ValidationError{Path: []string{}, Message: fmt.Sprintf("%s is not of type 'object'", repr(v))}
	}

	for _, f := range s.Fields {
		if _, present := m.Get(f.Name); f.Required && !present {
			return &ValidationError{Path: []string{}, Message: fmt.Sprintf("'%s' is a required property", f.Name)}
		}
	}

	for _, f := range s.Fields {
		val, present := m.Get(f.Name)
		if !present {
			continue
		}
		if err := f.check(val); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) check(v record.Value) error {
	fail := func(format string, args ...any) error {
		return &ValidationError{Path: []string{f.Name}, Message: fmt.Sprintf(format, args...)}
	}

	if _, isNull := v.(record.Null); isNull {
		if f.Nullable {
			return nil
		}
		return fail("%s is not of type '%s'", repr(v), f.Type)
	}

	var subject any
	switch f.Type {
	case Integer:
		n, ok := asInteger(v)
		if !ok {
			return fail("%s is not of type 'integer'", repr(v))
		}
		subject = n
	case Number:
		x, ok := asNumber(v)
		if !ok {
			return fail("%s is not of type 'number'", repr(v))
		}
		subject = x
	case Boolean:
		if _, ok := v.(record.Bool); !ok {
			return fail("%s is not of type 'boolean'", repr(v))
		}
		return nil
	case String, DateTime:
		s, ok := v.(record.String)
		if !ok {
			return fail("%s is not of type 'string'", repr(v))
		}
		subject = string(s)
	}

	rules := f.Rule
	if f.Type == DateTime {
		rules = joinRules(rules, dateTimeRule)
	}
	if rules == "" {
		return nil
	}
	if err := validate.Var(subject, rules); err != nil {
		return fail("%s", ruleMessage(v, err))
	}
	return nil
}

func joinRules(rules ...string) string {
	var out []string
	for _, r := range rules {
		if r != "" {
			out = append(out, r)
		}
	}
	return strings.Join(out, ",")
}

func ruleMessage(v record.Value, err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}
	fe := errs[0]
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s is less than or equal to the minimum of %s", repr(v), fe.Param())
	case "gte":
		return fmt.Sprintf("%s is less than the minimum of %s", repr(v), fe.Param())
	case "lt":
		return fmt.Sprintf("%s is greater than or equal to the maximum of %s", repr(v), fe.Param())
	case "lte":
		return fmt.Sprintf("%s is greater than the maximum of %s", repr(v), fe.Param())
	case "min":
		return fmt.Sprintf("%s is too short", repr(v))
	case "max":
		return fmt.Sprintf("%s is too long", repr(v))
	case dateTimeRule:
		return fmt.Sprintf("%s is not a 'date-time'", repr(v))
	default:
		return fmt.Sprintf("%s does not satisfy '%s'", repr(v), fe.Tag())
	}
}

// asInteger accepts integral floats, as JSON makes no distinction.
func asInteger(v record.Value) (int64, bool) {
	switch x := v.(type) {
	case record.Int:
		return int64(x), true
	case record.Float:
		f := float64(x)
		if f == float64(int64(f)) {
			return int64(f), true
		}
	}
	return 0, false
}

func asNumber(v record.Value) (float64, bool) {
	switch x := v.(type) {
	case record.Int:
		return float64(x), true
	case record.Float:
		return float64(x), true
	}
	return 0, false
}

func repr(v record.Value) string {
	switch x := v.(type) {
	case record.Null:
		return "null"
	case record.Bool:
		return strconv.FormatBool(bool(x))
	case record.Int:
		return strconv.FormatInt(int64(x), 10)
	case record.Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case record.String:
		return "'" + string(x) + "'"
	case record.List:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = repr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *record.Map:
		parts := make([]string, 0, x.Len())
		x.Range(func(k string, item record.Value) bool {
			parts = append(parts, "'"+k+"': "+repr(item))
			return true
		})
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
