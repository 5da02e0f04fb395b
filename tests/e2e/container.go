//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:17"
	postgresPort     = nat.Port("5432/tcp")
	postgresUser     = "test"
	postgresPassword = "testpass"
)

var (
	postgresOnce      sync.Once
	postgresContainer testcontainers.Container
	postgresErr       error
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// adminDSN points at the maintenance database, used to create and drop the
// per-suite databases.
func (ci ContainerInfo) adminDSN() string {
	return ci.dsn("postgres")
}

func (ci ContainerInfo) dsn(dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, ci.Host, ci.Port.Port(), dbName)
}

// ------------------------------------------------------------
// PostgreSQLコンテナをテストプロセスごとに一度だけ起動
// ------------------------------------------------------------
func startPostgres(t *testing.T) ContainerInfo {
	t.Helper()

	postgresOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		postgresContainer, postgresErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        postgresImage,
				ExposedPorts: []string{string(postgresPort)},
				Env: map[string]string{
					"POSTGRES_USER":     postgresUser,
					"POSTGRES_PASSWORD": postgresPassword,
					"POSTGRES_DB":       "postgres",
				},
				// データはRAM上に置き、耐久性の設定は切る
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=100",
				},
				WaitingFor: wait.ForSQL(postgresPort, "pgx", func(host string, port nat.Port) string {
					return ContainerInfo{Host: host, Port: port}.adminDSN()
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "bookride-e2e"},
			},
			Started: true,
		})
		if postgresErr != nil {
			return
		}
		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := postgresContainer.Terminate(ctx); err != nil {
				slog.Warn("PostgreSQLコンテナの終了に失敗しました", "error", err.Error())
			}
		})
	})
	require.NoError(t, postgresErr, "PostgreSQLコンテナの起動に失敗")

	ctx := context.Background()
	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err, "コンテナホストの取得に失敗")
	port, err := postgresContainer.MappedPort(ctx, postgresPort)
	require.NoError(t, err, "コンテナポートの取得に失敗")

	return ContainerInfo{Host: host, Port: port}
}
