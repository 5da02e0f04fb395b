//go:build unit

package codec_test

import (
	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/record"
)

var testBookResource = codec.Resource{
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

var testRentalResource = codec.Resource{
	Root: "rental",
	Coercers: []codec.FieldCoercer{
		{Field: "id", Coerce: codec.CoerceInt},
		{Field: "price_eur", Coerce: codec.CoerceFloat},
		{Field: "end_time", Coerce: codec.CoerceString},
	},
	Binary: codec.BinarySchema{
		{Name: "id", Number: 1, Kind: codec.Int32},
		{Name: "bike_id", Number: 3, Kind: codec.String},
		{Name: "end_time", Number: 5, Kind: codec.String, Optional: true},
		{Name: "price_eur", Number: 6, Kind: codec.Double},
	},
}

func sampleBook() *record.Map {
	return record.NewMap().
		Set("id", record.Int(1)).
		Set("title", record.String("1984")).
		Set("author", record.String("Orwell")).
		Set("price", record.Float(8.99)).
		Set("in_stock", record.Bool(true))
}
