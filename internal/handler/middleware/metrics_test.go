//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"bookride-api/internal/handler/middleware"
	"bookride-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	metrics, err := middleware.NewMetrics(reg)
	require.NoError(t, err)

	router := gin.New()
	router.Use(metrics.CountRequests())
	router.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET(middleware.MetricsPath, func(c *gin.Context) { c.Status(http.StatusOK) })

	httptest.PerformRequest(t, router, http.MethodGet, "/books/1", nil, "")
	httptest.PerformRequest(t, router, http.MethodGet, "/books/2", nil, "")
	httptest.PerformRequest(t, router, http.MethodGet, "/nope", nil, "")
	httptest.PerformRequest(t, router, http.MethodGet, middleware.MetricsPath, nil, "")

	t.Run("labels by route template", func(t *testing.T) {
		n, err := promtest.GatherAndCount(reg, "http_requests_total")
		require.NoError(t, err)
		assert.Equal(t, 2, n, "one series per route and status")
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		_, err := middleware.NewMetrics(reg)
		assert.Error(t, err)
	})
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.BodyLimit(8))
	router.POST("/echo", func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Data(http.StatusOK, "text/plain", body)
	})

	t.Run("body within limit is read", func(t *testing.T) {
		rec := httptest.PerformRaw(t, router, http.MethodPost, "/echo", []byte("12345678"), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "12345678", rec.Body.String())
	})

	t.Run("body past limit fails to read", func(t *testing.T) {
		rec := httptest.PerformRaw(t, router, http.MethodPost, "/echo", []byte("123456789"), nil)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
