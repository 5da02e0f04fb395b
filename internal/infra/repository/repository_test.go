//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"bookride-api/internal/domain/book"
	"bookride-api/internal/domain/rental"
	"bookride-api/internal/domain/user"
	"bookride-api/internal/infra"
	"bookride-api/internal/infra/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var startedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestBookRepository_Upsert(t *testing.T) {
	b, err := book.NewBook(1, "1984", "Orwell", 8.99, true)
	require.NoError(t, err)

	tests := []struct {
		name      string
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, mock.Anything, []any{int64(1), "1984", "Orwell", 8.99, true}).
				Return(pgconn.NewCommandTag("INSERT 0 1"), tt.mockError)

			err := repository.NewBookRepository(db).Upsert(context.Background(), b)
			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestRentalRepository_Create(t *testing.T) {
	r, err := rental.Start("kiosk-1", "bike-7", startedAt)
	require.NoError(t, err)

	db := new(MockDBTX)
	db.On("QueryRow", mock.Anything, mock.Anything, []any{"kiosk-1", "bike-7", startedAt}).
		Return(fakeRow{values: []any{int64(42)}})

	id, err := repository.NewRentalRepository(db).Create(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestRentalRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("open rental", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, []any{int64(42)}).
			Return(fakeRow{values: []any{
				int64(42), "7", "bike-7", startedAt,
				pgtype.Timestamptz{}, pgtype.Int4{}, pgtype.Float8{},
			}})

		got, err := repository.NewRentalRepository(db).FindByIDForUpdate(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, "7", got.User())
		assert.False(t, got.IsStopped())
		assert.Nil(t, got.PriceEUR())
	})

	t.Run("stopped rental", func(t *testing.T) {
		stopped := startedAt.Add(time.Hour)
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, []any{int64(42)}).
			Return(fakeRow{values: []any{
				int64(42), "7", "bike-7", startedAt,
				pgtype.Timestamptz{Time: stopped, Valid: true},
				pgtype.Int4{Int32: 60, Valid: true},
				pgtype.Float8{Float64: 12, Valid: true},
			}})

		got, err := repository.NewRentalRepository(db).FindByIDForUpdate(context.Background(), 42)
		require.NoError(t, err)
		assert.True(t, got.IsStopped())
		assert.Equal(t, 60, *got.TotalMinutes())
		assert.Equal(t, 12.0, *got.PriceEUR())
	})

	t.Run("not found", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, []any{int64(42)}).
			Return(fakeRow{err: pgx.ErrNoRows})

		_, err := repository.NewRentalRepository(db).FindByIDForUpdate(context.Background(), 42)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestRentalRepository_MarkStopped(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		wantKind infra.RepositoryErrorKind
	}{
		{name: "stopped", tag: "UPDATE 1"},
		{name: "already stopped by a concurrent request", tag: "UPDATE 0", wantKind: infra.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rental.ReconstructRental(42, "7", "bike-7", startedAt, nil, nil, nil)
			_, err := r.Stop(startedAt.Add(10*time.Minute), rental.NewCappedPriceCalculator())
			require.NoError(t, err)

			db := new(MockDBTX)
			db.On("Exec", mock.Anything, mock.Anything, mock.Anything).
				Return(pgconn.NewCommandTag(tt.tag), nil)

			err = repository.NewRentalRepository(db).MarkStopped(context.Background(), r)
			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
				return
			}
			assert.NoError(t, err)

			args := db.Calls[0].Arguments.Get(2).([]any)
			assert.Equal(t, int64(42), args[0])
			assert.Equal(t, pgtype.Int4{Int32: 10, Valid: true}, args[2])
			assert.Equal(t, pgtype.Float8{Float64: 2.5, Valid: true}, args[3])
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	email, err := user.NewEmail("a@example.com")
	require.NoError(t, err)
	u := user.NewUser(email, "hash", user.RoleUser, []string{"a", "b"})

	t.Run("success", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, []any{"a@example.com", "hash", "user", "a b"}).
			Return(fakeRow{values: []any{int64(5)}})

		id, err := repository.NewUserRepository(db).Create(context.Background(), u)
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
			Return(fakeRow{err: &pgconn.PgError{Code: "23505"}})

		_, err := repository.NewUserRepository(db).Create(context.Background(), u)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func TestAPIKeyRepository_Upsert(t *testing.T) {
	db := new(MockDBTX)
	db.On("Exec", mock.Anything, mock.Anything, []any{"kiosk-1", "hash", true}).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := repository.NewAPIKeyRepository(db).Upsert(context.Background(), "kiosk-1", "hash", true)
	assert.NoError(t, err)
	db.AssertExpectations(t)
}
