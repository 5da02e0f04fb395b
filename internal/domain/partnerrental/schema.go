package partnerrental

import (
	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/schema"
)

var Schema = schema.Schema{
	Name: "rental",
	Fields: []schema.Field{
		{Name: "id", Type: schema.Integer, Required: true, Rule: "gt=0,lte=2147483647"},
		{Name: "user_id", Type: schema.Integer, Required: true, Rule: "gt=0,lte=2147483647"},
		{Name: "bike_id", Type: schema.String, Required: true},
		{Name: "start_time", Type: schema.DateTime, Required: true},
		{Name: "end_time", Type: schema.DateTime, Nullable: true},
		{Name: "price_eur", Type: schema.Number, Required: true, Rule: "gte=0"},
	},
}

// Resource is the codec description of a partner rental. end_time is the
// only optional binary field; its unset sentinel is the empty string.
var Resource = codec.Resource{
	Root: "rental",
	Coercers: []codec.FieldCoercer{
		{Field: "id", Coerce: codec.CoerceInt},
		{Field: "user_id", Coerce: codec.CoerceInt},
		{Field: "price_eur", Coerce: codec.CoerceFloat},
		{Field: "start_time", Coerce: codec.CoerceString},
		{Field: "end_time", Coerce: codec.CoerceString},
	},
	Binary: codec.BinarySchema{
		{Name: "id", Number: 1, Kind: codec.Int32},
		{Name: "user_id", Number: 2, Kind: codec.Int32},
		{Name: "bike_id", Number: 3, Kind: codec.String},
		{Name: "start_time", Number: 4, Kind: codec.String},
		{Name: "end_time", Number: 5, Kind: codec.String, Optional: true},
		{Name: "price_eur", Number: 6, Kind: codec.Double},
	},
}
