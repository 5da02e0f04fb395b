package readstore

import (
	"context"
	"errors"

	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
	"bookride-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

const (
	findBookByIDSQL = `SELECT id, title, author, price, in_stock FROM books WHERE id = $1`
	listBooksSQL    = `SELECT id, title, author, price, in_stock FROM books ORDER BY id`
)

type bookRow struct {
	ID      int64
	Title   string
	Author  string
	Price   float64
	InStock bool
}

func (r *bookRow) scanTargets() []any {
	return []any{&r.ID, &r.Title, &r.Author, &r.Price, &r.InStock}
}

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(db db.DBTX) *BookReadStore {
	return &BookReadStore{db: db}
}

func (s *BookReadStore) FindByID(ctx context.Context, id int64) (*queries.BookView, error) {
	var row bookRow
	if err := s.db.QueryRow(ctx, findBookByIDSQL, id).Scan(row.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book by ID", err)
	}
	return toView[queries.BookView](&row)
}

func (s *BookReadStore) List(ctx context.Context) ([]queries.BookView, error) {
	rows, err := s.db.Query(ctx, listBooksSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list books", err)
	}
	defer rows.Close()

	var out []queries.BookView
	for rows.Next() {
		var row bookRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan book", err)
		}
		view, err := toView[queries.BookView](&row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to map book", err)
		}
		out = append(out, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list books", err)
	}
	return out, nil
}
