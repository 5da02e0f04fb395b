package repository

import (
	"context"

	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
)

const upsertAPIKeySQL = `
INSERT INTO api_keys (name, key_hash, is_active)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET
	key_hash  = EXCLUDED.key_hash,
	is_active = EXCLUDED.is_active`

type APIKeyRepository struct {
	db db.DBTX
}

func NewAPIKeyRepository(db db.DBTX) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

func (r *APIKeyRepository) Upsert(ctx context.Context, name, keyHash string, active bool) error {
	if _, err := r.db.Exec(ctx, upsertAPIKeySQL, name, keyHash, active); err != nil {
		return infra.WrapRepoErr("failed to upsert api key", err)
	}
	return nil
}
