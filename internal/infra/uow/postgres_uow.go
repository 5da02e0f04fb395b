package uow

import (
	"context"
	"errors"
	"log/slog"

	"bookride-api/internal/infra/db"
	"bookride-api/internal/infra/repository"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	retry shared.RetryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		retry: shared.DefaultRetryPolicy(),
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	options := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	return u.retry.Run(ctx, func(attempt int) error {
		return u.runOnce(ctx, options, attempt, fn)
	})
}

// Rolls back within the attempt so retries never accumulate open transactions
func (u *PostgresUoW) runOnce(ctx context.Context, options pgx.TxOptions, attempt int, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, shared.ErrTransactionBegin)
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, shared.ErrTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
		}
	}
	return err
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookRepo          shared.BookRepository
	partnerRentalRepo shared.PartnerRentalRepository
	rentalRepo        shared.RentalRepository
	userRepo          shared.UserRepository
	apiKeyRepo        shared.APIKeyRepository
}

func (t *pgTx) Books() shared.BookRepository {
	if t.bookRepo == nil {
		t.bookRepo = repository.NewBookRepository(t.dbtx)
	}
	return t.bookRepo
}

func (t *pgTx) PartnerRentals() shared.PartnerRentalRepository {
	if t.partnerRentalRepo == nil {
		t.partnerRentalRepo = repository.NewPartnerRentalRepository(t.dbtx)
	}
	return t.partnerRentalRepo
}

func (t *pgTx) Rentals() shared.RentalRepository {
	if t.rentalRepo == nil {
		t.rentalRepo = repository.NewRentalRepository(t.dbtx)
	}
	return t.rentalRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) APIKeys() shared.APIKeyRepository {
	if t.apiKeyRepo == nil {
		t.apiKeyRepo = repository.NewAPIKeyRepository(t.dbtx)
	}
	return t.apiKeyRepo
}
