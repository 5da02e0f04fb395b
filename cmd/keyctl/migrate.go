package main

import (
	"fmt"

	"bookride-api/internal/pkg/config"
	"bookride-api/migrations"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/cobra"
)

var atlasBin string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Applies the embedded migration directory to the configured database
using the atlas CLI. Already applied versions are skipped.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&atlasBin, "atlas", "atlas", "Path to the atlas executable")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadToolConfig()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	wd, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(migrations.FS))
	if err != nil {
		return fmt.Errorf("prepare migration dir: %w", err)
	}
	defer wd.Close()

	client, err := atlasexec.NewClient(wd.Path(), atlasBin)
	if err != nil {
		return fmt.Errorf("init atlas client: %w", err)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL: cfg.DB.BuildDSN(),
	})
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	logger.Info("migrations applied", "count", len(res.Applied), "target", res.Target)
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s), schema at version %s\n", len(res.Applied), res.Target)
	return nil
}
