package main

import (
	"errors"
	"fmt"

	"bookride-api/internal/infra/uow"
	"bookride-api/internal/pkg/config"
	"bookride-api/internal/usecase/commands"

	"github.com/spf13/cobra"
)

var (
	apiKeyName   string
	apiKeySecret string
	apiKeyPepper string
)

var apiKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage pre-shared API keys",
}

var apiKeyUpsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Create or rotate an API key",
	Long: `Stores a bcrypt hash of pepper+key under the given name and marks it active.
An existing key with the same name is replaced. The plaintext is never stored;
distribute it to the caller out of band.`,
	Args: cobra.NoArgs,
	RunE: runAPIKeyUpsert,
}

func init() {
	apiKeyUpsertCmd.Flags().StringVar(&apiKeyName, "name", "", "Identifier of the key owner (e.g. service-a)")
	apiKeyUpsertCmd.Flags().StringVar(&apiKeySecret, "key", "", "Plaintext API key")
	apiKeyUpsertCmd.Flags().StringVar(&apiKeyPepper, "pepper", "", "Secret prepended before hashing (defaults to API_KEY_PEPPER)")
	_ = apiKeyUpsertCmd.MarkFlagRequired("name")
	_ = apiKeyUpsertCmd.MarkFlagRequired("key")

	apiKeyCmd.AddCommand(apiKeyUpsertCmd)
}

func runAPIKeyUpsert(cmd *cobra.Command, args []string) error {
	if apiKeySecret == "" {
		return errors.New("--key must not be empty")
	}

	cfg, err := config.LoadToolConfig()
	if err != nil {
		return err
	}
	pepper := cfg.APIKey.Pepper
	if cmd.Flags().Changed("pepper") {
		pepper = apiKeyPepper
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	pool, cleanup, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	admin := commands.NewAdminCommands(uow.NewPostgresUoW(pool), pepper)
	if err := admin.UpsertAPIKey(ctx, apiKeyName, apiKeySecret); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}

	logger.Info("api key stored", "name", apiKeyName)
	fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for '%s'. Distribute the plaintext secret out-of-band.\n", apiKeyName)
	return nil
}
