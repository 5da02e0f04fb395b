package bootstrap

import (
	"bookride-api/internal/pkg/clock"
	"bookride-api/internal/pkg/config"
	"bookride-api/internal/pkg/jwt"
	"bookride-api/internal/usecase"
	"bookride-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewJWTService,
			fx.As(fx.Self()),
			fx.As(new(usecase.TokenVerifier)),
			fx.As(new(commands.TokenIssuer)),
		),
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) (*jwt.Service, error) {
	return jwt.NewService(cfg.JWT, clk)
}
