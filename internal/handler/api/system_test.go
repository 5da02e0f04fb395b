//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"bookride-api/internal/handler/api"
	resdto "bookride-api/internal/handler/dto/response"
	"bookride-api/internal/pkg/config"
	"bookride-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()

	reg := prometheus.NewRegistry()
	probe := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
	reg.MustRegister(probe)
	probe.Inc()

	h := api.NewSystemHandler(cfg, reg)
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/info", h.Info)
	router.GET("/metrics", h.Metrics)

	t.Run("health reports ok and version", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, "")

		var got resdto.HealthResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
		assert.Equal(t, resdto.HealthResponse{Status: "ok", Version: "1.0.0"}, got)
	})

	t.Run("info reports environment", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/info", nil, "")

		var got resdto.InfoResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
		assert.Equal(t, "test", got.Environment)
		assert.Equal(t, "http://localhost:8889", got.ServiceURL)
		assert.False(t, got.Debug)
	})

	t.Run("metrics exposes the registry", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/metrics", nil, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "probe_total 1")
	})
}
