package components

import (
	"bookride-api/internal/handler"
	"bookride-api/internal/handler/api"
	"bookride-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookHandler,
		api.NewPartnerRentalHandler,
		api.NewRentalHandler,
		api.NewConvertHandler,
		api.NewSystemHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
