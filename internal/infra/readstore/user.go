package readstore

import (
	"context"
	"errors"
	"time"

	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
	"bookride-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

const (
	findUserByIDSQL = `
SELECT id, email, role, scopes, created_at, password_hash
FROM users
WHERE id = $1`

	findUserByEmailSQL = `
SELECT id, email, role, scopes, created_at, password_hash
FROM users
WHERE email = lower($1)`
)

type userRow struct {
	ID           int64
	Email        string
	Role         string
	Scopes       string
	CreatedAt    time.Time
	PasswordHash string
}

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (s *UserReadStore) FindByID(ctx context.Context, id int64) (*queries.UserView, error) {
	row, err := s.find(ctx, findUserByIDSQL, id)
	if err != nil {
		return nil, err
	}
	return toView[queries.UserView](row)
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	row, err := s.find(ctx, findUserByEmailSQL, email)
	if err != nil {
		return nil, "", err
	}
	view, err := toView[queries.UserView](row)
	if err != nil {
		return nil, "", err
	}
	return view, row.PasswordHash, nil
}

func (s *UserReadStore) find(ctx context.Context, query string, arg any) (*userRow, error) {
	var row userRow
	err := s.db.QueryRow(ctx, query, arg).
		Scan(&row.ID, &row.Email, &row.Role, &row.Scopes, &row.CreatedAt, &row.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &row, nil
}
