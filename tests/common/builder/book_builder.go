//go:build unit || e2e

package builder

import (
	"bookride-api/internal/domain/book"
	"bookride-api/internal/pkg/record"
	"bookride-api/internal/usecase/queries"
)

type BookBuilder struct {
	ID      int64
	Title   string
	Author  string
	Price   float64
	InStock bool
}

func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		ID:      1,
		Title:   "1984",
		Author:  "George Orwell",
		Price:   9.99,
		InStock: true,
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

func (b *BookBuilder) BuildDomain() (*book.Book, error) {
	return book.NewBook(b.ID, b.Title, b.Author, b.Price, b.InStock)
}

// BuildPayload is the decoded request body a client would send.
func (b *BookBuilder) BuildPayload() *record.Map {
	return record.NewMap().
		Set("id", record.Int(b.ID)).
		Set("title", record.String(b.Title)).
		Set("author", record.String(b.Author)).
		Set("price", record.Float(b.Price)).
		Set("in_stock", record.Bool(b.InStock))
}

func (b *BookBuilder) BuildView() *queries.BookView {
	return &queries.BookView{
		ID:      b.ID,
		Title:   b.Title,
		Author:  b.Author,
		Price:   b.Price,
		InStock: b.InStock,
	}
}

// BuildJSON is the book as encoding/json decodes its JSON rendering.
func (b *BookBuilder) BuildJSON() map[string]any {
	return map[string]any{
		"id":       float64(b.ID),
		"title":    b.Title,
		"author":   b.Author,
		"price":    b.Price,
		"in_stock": b.InStock,
	}
}

func (b *BookBuilder) WithID(id int64) *BookBuilder {
	b.ID = id
	return b
}

func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.Title = title
	return b
}

func (b *BookBuilder) WithPrice(price float64) *BookBuilder {
	b.Price = price
	return b
}

func (b *BookBuilder) OutOfStock() *BookBuilder {
	b.InStock = false
	return b
}
