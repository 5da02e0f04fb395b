package readstore

import (
	"context"

	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
	"bookride-api/internal/usecase/queries"
)

const listActiveAPIKeysSQL = `SELECT id, name, key_hash FROM api_keys WHERE is_active ORDER BY id`

type APIKeyReadStore struct {
	db db.DBTX
}

func NewAPIKeyReadStore(db db.DBTX) *APIKeyReadStore {
	return &APIKeyReadStore{db: db}
}

func (s *APIKeyReadStore) ListActive(ctx context.Context) ([]queries.APIKeyView, error) {
	rows, err := s.db.Query(ctx, listActiveAPIKeysSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list api keys", err)
	}
	defer rows.Close()

	var out []queries.APIKeyView
	for rows.Next() {
		var k queries.APIKeyView
		if err := rows.Scan(&k.ID, &k.Name, &k.KeyHash); err != nil {
			return nil, infra.WrapRepoErr("failed to scan api key", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list api keys", err)
	}
	return out, nil
}
