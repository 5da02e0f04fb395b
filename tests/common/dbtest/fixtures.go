//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bookride-api/internal/pkg/password"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both a pool and a transaction so fixtures can be
// seeded inside a test's own transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DefaultPassword is the plaintext behind every CreateTestUser hash.
const DefaultPassword = "password123"

var (
	hashOnce    sync.Once
	defaultHash string
	hashErr     error
)

func CreateTestUser(t *testing.T, db DBLike, email, role, scopes string) int64 {
	t.Helper()

	hashOnce.Do(func() {
		defaultHash, hashErr = password.HashPassword(DefaultPassword)
	})
	require.NoError(t, hashErr)

	var userID int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (username, email, password_hash, role, scopes)
		VALUES ($1, $1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, scopes = EXCLUDED.scopes
		RETURNING id`,
		strings.ToLower(email), defaultHash, role, scopes).Scan(&userID)
	require.NoError(t, err)

	return userID
}

// CreateTestAPIKey stores an active key hashed with pepper.
func CreateTestAPIKey(t *testing.T, db DBLike, name, pepper, key string) {
	t.Helper()

	hash, err := password.HashAPIKey(pepper, key)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), `
		INSERT INTO api_keys (name, key_hash, is_active) VALUES ($1, $2, true)
		ON CONFLICT (name) DO UPDATE SET key_hash = EXCLUDED.key_hash, is_active = true`,
		name, hash)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except atlas bookkeeping
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
