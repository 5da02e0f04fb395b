package commands

import (
	"context"

	"bookride-api/internal/domain/book"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/pkg/record"
	"bookride-api/internal/usecase/shared"
)

type BookCommands interface {
	// Upsert validates payload and stores it under its own id. Schema
	// errors are returned unwrapped.
	Upsert(ctx context.Context, payload record.Value) (*book.Book, error)
}

type bookCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewBookCommands(uow shared.UnitOfWork) BookCommands {
	return &bookCommandsImpl{uow: uow}
}

func (uc *bookCommandsImpl) Upsert(ctx context.Context, payload record.Value) (*book.Book, error) {
	b, err := book.Parse(payload)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Books().Upsert(ctx, b)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}
