package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookride-api/internal/infra/db"
	"bookride-api/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	timeout time.Duration

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "keyctl",
	Short: "Operator tooling for bookride-api",
	Long: `keyctl manages the bookride-api database outside the HTTP surface.

It applies schema migrations, rotates partner API keys and seeds users.
Connection settings come from the same DB_* environment variables as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall deadline for the command")

	rootCmd.AddCommand(migrateCmd, apiKeyCmd, userCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// commandContext applies the --timeout deadline to the command context.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func openPool(ctx context.Context, cfg config.ToolConfig) (*pgxpool.Pool, func(), error) {
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Debug("connected to database", "host", cfg.DB.Host, "db", cfg.DB.DBName)
	return pool, cleanup, nil
}
