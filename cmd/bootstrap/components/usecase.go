package components

import (
	"bookride-api/internal/domain/rental"
	"bookride-api/internal/pkg/clock"
	"bookride-api/internal/pkg/config"
	"bookride-api/internal/usecase"
	"bookride-api/internal/usecase/commands"
	"bookride-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		rental.NewCappedPriceCalculator,
		fx.As(new(rental.PriceCalculator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookCommands,
		commands.NewPartnerRentalCommands,
		commands.NewRentalCommands,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookQueries,
		queries.NewPartnerRentalQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		func(tokens usecase.TokenVerifier, apiKeys queries.APIKeyReadStore, cfg config.Config) usecase.Authenticator {
			return usecase.NewAuthenticator(tokens, apiKeys, cfg.APIKey.Pepper)
		},
	),
)
