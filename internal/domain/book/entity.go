package book

import (
	"errors"

	"bookride-api/internal/pkg/record"
)

var (
	ErrInvalidID     = errors.New("book id must be positive")
	ErrNegativePrice = errors.New("price cannot be negative")
)

type Book struct {
	id      int64
	title   string
	author  string
	price   float64
	inStock bool
}

func NewBook(id int64, title, author string, price float64, inStock bool) (*Book, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	return &Book{
		id:      id,
		title:   title,
		author:  author,
		price:   price,
		inStock: inStock,
	}, nil
}

func (b *Book) ID() int64      { return b.id }
func (b *Book) Title() string  { return b.title }
func (b *Book) Author() string { return b.author }
func (b *Book) Price() float64 { return b.price }
func (b *Book) InStock() bool  { return b.inStock }

// Record renders the book in its canonical field order.
func (b *Book) Record() *record.Map {
	return record.NewMap().
		Set("id", record.Int(b.id)).
		Set("title", record.String(b.title)).
		Set("author", record.String(b.author)).
		Set("price", record.Float(b.price)).
		Set("in_stock", record.Bool(b.inStock))
}

// Parse validates a decoded payload against Schema and builds the entity.
func Parse(v record.Value) (*Book, error) {
	if err := Schema.Validate(v); err != nil {
		return nil, err
	}
	m := v.(*record.Map)

	id, _ := m.Get("id")
	title, _ := m.Get("title")
	author, _ := m.Get("author")
	price, _ := m.Get("price")
	inStock, _ := m.Get("in_stock")

	return NewBook(
		record.AsInt(id),
		string(title.(record.String)),
		string(author.(record.String)),
		record.AsFloat(price),
		bool(inStock.(record.Bool)),
	)
}
