package book

import (
	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/schema"
)

var Schema = schema.Schema{
	Name: "book",
	Fields: []schema.Field{
		{Name: "id", Type: schema.Integer, Required: true, Rule: "gt=0,lte=2147483647"},
		{Name: "title", Type: schema.String, Required: true},
		{Name: "author", Type: schema.String, Required: true},
		{Name: "price", Type: schema.Number, Required: true, Rule: "gte=0"},
		{Name: "in_stock", Type: schema.Boolean, Required: true},
	},
}

// Resource is the codec description of a book. XML output is namespaced
// under the "b" prefix.
var Resource = codec.Resource{
	Root:      "book",
	Namespace: &codec.Namespace{Prefix: "b", URI: "urn:book"},
	Coercers: []codec.FieldCoercer{
		{Field: "id", Coerce: codec.CoerceInt},
		{Field: "price", Coerce: codec.CoerceFloat},
		{Field: "in_stock", Coerce: codec.CoerceBool},
	},
	Binary: codec.BinarySchema{
		{Name: "id", Number: 1, Kind: codec.Int32},
		{Name: "title", Number: 2, Kind: codec.String},
		{Name: "author", Number: 3, Kind: codec.String},
		{Name: "price", Number: 4, Kind: codec.Double},
		{Name: "in_stock", Number: 5, Kind: codec.Bool},
	},
}
