package bootstrap

import (
	"log/slog"

	"bookride-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(
		warnWeakSecrets,
	),
)

// warnWeakSecrets flags settings that are acceptable locally but not in a
// shared environment.
func warnWeakSecrets(cfg config.Config, logger *slog.Logger) {
	if cfg.App.Env == "dev" || cfg.App.Env == "test" {
		return
	}
	if cfg.APIKey.Pepper == "" {
		logger.Warn("API_KEY_PEPPER is empty; api key hashes are unpeppered", "env", cfg.App.Env)
	}
	if len(cfg.JWT.Secret) < 32 {
		logger.Warn("JWT_SECRET is shorter than 32 bytes", "env", cfg.App.Env)
	}
}
