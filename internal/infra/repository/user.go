package repository

import (
	"context"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/domain/user"
	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
)

const (
	createUserSQL = `
INSERT INTO users (username, email, password_hash, role, scopes)
VALUES ($1, $1, $2, $3, $4)
RETURNING id`

	upsertUserByEmailSQL = `
INSERT INTO users (username, email, password_hash, role, scopes)
VALUES ($1, $1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE SET
	password_hash = EXCLUDED.password_hash,
	role          = EXCLUDED.role,
	scopes        = EXCLUDED.scopes
RETURNING id`
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create reports KindDuplicateKey when the email is already registered.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, createUserSQL, u.Email().Value(), u.PasswordHash(), u.Role().String(), auth.JoinScopes(u.Scopes())).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpsertByEmail(ctx context.Context, u *user.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, upsertUserByEmailSQL, u.Email().Value(), u.PasswordHash(), u.Role().String(), auth.JoinScopes(u.Scopes())).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to upsert user", err)
	}
	return id, nil
}
