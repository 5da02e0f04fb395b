package repository

import (
	"context"

	"bookride-api/internal/domain/book"
	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
)

const upsertBookSQL = `
INSERT INTO books (id, title, author, price, in_stock)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	title    = EXCLUDED.title,
	author   = EXCLUDED.author,
	price    = EXCLUDED.price,
	in_stock = EXCLUDED.in_stock`

type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(db db.DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Upsert(ctx context.Context, b *book.Book) error {
	_, err := r.db.Exec(ctx, upsertBookSQL, b.ID(), b.Title(), b.Author(), b.Price(), b.InStock())
	if err != nil {
		return infra.WrapRepoErr("failed to upsert book", err)
	}
	return nil
}
