package api

import (
	"net/http"

	resdto "bookride-api/internal/handler/dto/response"
	"bookride-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type SystemHandler struct {
	app     config.AppConfig
	metrics http.Handler
}

func NewSystemHandler(cfg config.Config, gatherer prometheus.Gatherer) *SystemHandler {
	return &SystemHandler{
		app:     cfg.App,
		metrics: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags system
// @Produce json
// @Success 200 {object} resdto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.HealthResponse{
		Status:  "ok",
		Version: h.app.Version,
	})
}

// @Summary Service info
// @Tags system
// @Produce json
// @Success 200 {object} resdto.InfoResponse
// @Router /info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.InfoResponse{
		Environment: h.app.Env,
		Version:     h.app.Version,
		ServiceURL:  h.app.ServiceURL,
		Debug:       h.app.Debug,
	})
}

// @Summary Prometheus metrics
// @Tags system
// @Produce plain
// @Success 200 {string} string
// @Router /metrics [get]
func (h *SystemHandler) Metrics(c *gin.Context) {
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
