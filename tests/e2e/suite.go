//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"bookride-api/cmd/bootstrap"
	"bookride-api/cmd/bootstrap/components"
	"bookride-api/internal/pkg/config"
	"bookride-api/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	ci := startPostgres(t)
	dbConfig := createDatabase(t, ci)
	s.DB = connect(t, dbConfig)

	s.Config = config.NewTestConfig()
	s.Config.DB = dbConfig
	s.Router = startApp(t, s.DB, s.Config)

	slog.Info("E2E環境の準備が完了しました", "postgres_host", ci.Host, "postgres_port", ci.Port.Port(), "database", dbConfig.DBName)
}

// 各サブテストは空のテーブルから始める
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}

// startApp wires the production modules around an existing pool and config
// and returns the populated router.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Supply(pool, cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.MetricsModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	require.NotNil(t, router, "Routerのセットアップに失敗")
	return router
}
