package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/handler/api"
	"bookride-api/internal/handler/middleware"
	"bookride-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Auth          *api.AuthHandler
	Book          *api.BookHandler
	PartnerRental *api.PartnerRentalHandler
	Rental        *api.RentalHandler
	Convert       *api.ConvertHandler
	System        *api.SystemHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, metrics *middleware.Metrics, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger, metrics)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger, metrics *middleware.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(metrics.CountRequests())
	engine.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	requireUser := authMiddleware.RequireUser()
	requirePartner := authMiddleware.RequireToken(auth.ScopePartnerRentals)
	requireActor := authMiddleware.RequireActor(auth.ScopeRentalsWrite)

	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodGet, Path: "/health", Handler: h.System.Health},
		{Method: http.MethodGet, Path: "/info", Handler: h.System.Info},
		{Method: http.MethodGet, Path: middleware.MetricsPath, Handler: h.System.Metrics},

		{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
		{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
		{Method: http.MethodPost, Path: "/auth/login", Handler: h.Auth.Login},
		{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{requireUser}},

		{Method: http.MethodPost, Path: "/convert", Handler: h.Convert.Convert},
	})

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	books := engine.Group("/books")
	books.Use(requireUser)
	{
		addRoutes(books, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Book.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Book.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Book.Get},
		})
	}

	rentals := engine.Group("/rentals")
	{
		addRoutes(rentals, []route{
			{Method: http.MethodPost, Path: "", Handler: h.PartnerRental.Create, Mw: []gin.HandlerFunc{requirePartner}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.PartnerRental.Get, Mw: []gin.HandlerFunc{requirePartner}},
			{Method: http.MethodPost, Path: "/start", Handler: h.Rental.Start, Mw: []gin.HandlerFunc{requireActor}},
			{Method: http.MethodPost, Path: "/stop", Handler: h.Rental.Stop, Mw: []gin.HandlerFunc{requireActor}},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
