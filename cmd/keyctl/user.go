package main

import (
	"fmt"
	"strings"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/domain/user"
	"bookride-api/internal/infra/uow"
	"bookride-api/internal/pkg/config"
	"bookride-api/internal/usecase/commands"

	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userPassword string
	userScopes   string
	userRole     string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage application users",
}

var userUpsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Create or update a user",
	Long: `Creates the user or, when the email is already registered, replaces its
password hash, role and scopes. Scopes are space-delimited and are embedded in
every token the user obtains afterwards.`,
	Example: `  keyctl user upsert --email ops@example.com --password 'correct horse' --scopes 'partner.rentals rentals:write'`,
	Args:    cobra.NoArgs,
	RunE:    runUserUpsert,
}

func init() {
	userUpsertCmd.Flags().StringVar(&userEmail, "email", "", "Unique email of the user")
	userUpsertCmd.Flags().StringVar(&userPassword, "password", "", "Plaintext password (hashed before storage)")
	userUpsertCmd.Flags().StringVar(&userScopes, "scopes", "", "Space-delimited scopes to embed in tokens")
	userUpsertCmd.Flags().StringVar(&userRole, "role", string(user.RoleUser), "Role of the user")
	_ = userUpsertCmd.MarkFlagRequired("email")
	_ = userUpsertCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userUpsertCmd)
}

func runUserUpsert(cmd *cobra.Command, args []string) error {
	credentials, err := user.NewCredentials(userEmail, userPassword)
	if err != nil {
		return err
	}
	role, err := user.NewRole(userRole)
	if err != nil {
		return err
	}
	scopes := auth.ParseScopes(strings.TrimSpace(userScopes))

	cfg, err := config.LoadToolConfig()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	pool, cleanup, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	admin := commands.NewAdminCommands(uow.NewPostgresUoW(pool), cfg.APIKey.Pepper)
	id, err := admin.UpsertUser(ctx, credentials, role, scopes)
	if err != nil {
		return fmt.Errorf("store user: %w", err)
	}

	shown := strings.Join(scopes, " ")
	if shown == "" {
		shown = "(none)"
	}
	logger.Info("user stored", "user_id", id, "email", credentials.Email().Value())
	fmt.Fprintf(cmd.OutOrStdout(), "Stored user '%s' (id %d) with scopes: %s\n", credentials.Email().Value(), id, shown)
	return nil
}
