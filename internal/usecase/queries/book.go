package queries

import (
	"context"

	"bookride-api/internal/domain/book"
	"bookride-api/internal/infra"
	"bookride-api/internal/pkg/errs"
)

type BookQueries interface {
	Get(ctx context.Context, id int64) (*book.Book, error)
	List(ctx context.Context) ([]*book.Book, error)
}

type BookReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookView, error)
	List(ctx context.Context) ([]BookView, error)
}

type bookQueriesImpl struct {
	readStore BookReadStore
}

func NewBookQueries(readStore BookReadStore) BookQueries {
	return &bookQueriesImpl{
		readStore: readStore,
	}
}

func (q *bookQueriesImpl) Get(ctx context.Context, id int64) (*book.Book, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view.toDomain()
}

func (q *bookQueriesImpl) List(ctx context.Context) ([]*book.Book, error) {
	views, err := q.readStore.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	books := make([]*book.Book, 0, len(views))
	for i := range views {
		b, err := views[i].toDomain()
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

func (v *BookView) toDomain() (*book.Book, error) {
	b, err := book.NewBook(v.ID, v.Title, v.Author, v.Price, v.InStock)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidationFailed)
	}
	return b, nil
}
