//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"bookride-api/internal/handler/httperr"
	"bookride-api/internal/handler/middleware"
	"bookride-api/internal/pkg/errs"
	"bookride-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	return router
}

func TestErrorHandler(t *testing.T) {
	router := newErrorRouter()
	router.GET("/boom", func(c *gin.Context) {
		httperr.Abort(c, errs.Wrap(errs.New("connection reset"), "list books"))
	})
	router.GET("/missing", func(c *gin.Context) {
		_ = c.Error(&gin.Error{
			Err:  errs.ErrBookNotFound,
			Type: gin.ErrorTypePublic,
			Meta: httperr.Response{Status: http.StatusNotFound, Detail: "Book not found"},
		})
	})
	router.GET("/silent", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	t.Run("unmapped error renders 500", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/boom", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, httperr.MsgInternal)
	})

	t.Run("unwritten public error is rendered", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/missing", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Book not found")
	})

	t.Run("explicit status without body is kept", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/silent", nil, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("panic is recovered as 500", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/panic", nil, "")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, httperr.MsgInternal)
	})
}
