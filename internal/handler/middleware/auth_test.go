//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/handler/middleware"
	"bookride-api/internal/pkg/config"
	"bookride-api/internal/usecase"
	"bookride-api/tests/common/httptest"
	queriesmock "bookride-api/tests/mock/queries"
	usecasemock "bookride-api/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuthMiddleware(t *testing.T) (*middleware.AuthMiddleware, *usecasemock.MockAuthenticator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	authenticator := usecasemock.NewMockAuthenticator(ctrl)
	return middleware.NewAuthMiddleware(authenticator, queriesmock.NewMockUserQueries(ctrl), config.NewTestConfig()), authenticator
}

// echoPrincipal responds with the principal the middleware stored.
func echoPrincipal(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": p.Kind, "subject": p.Subject})
}

func TestRequireToken(t *testing.T) {
	t.Run("スコープを満たすトークンを通す", func(t *testing.T) {
		m, authenticator := newAuthMiddleware(t)
		router := gin.New()
		router.GET("/p", m.RequireToken(auth.ScopePartnerRentals), echoPrincipal)

		authenticator.EXPECT().ResolveBearer("abc", []string{auth.ScopePartnerRentals}).
			Return(auth.TokenPrincipal("3", []string{auth.ScopePartnerRentals}, "", ""), nil)

		rec := httptest.PerformRaw(t, router, http.MethodGet, "/p", nil, map[string]string{"Authorization": "bearer abc"})

		var got map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
		assert.Equal(t, map[string]string{"kind": "token", "subject": "3"}, got)
	})

	t.Run("Bearer以外のスキームは401", func(t *testing.T) {
		m, _ := newAuthMiddleware(t)
		router := gin.New()
		router.GET("/p", m.RequireToken(auth.ScopePartnerRentals), echoPrincipal)

		rec := httptest.PerformRaw(t, router, http.MethodGet, "/p", nil, map[string]string{"Authorization": "Basic dXNlcjpwYXNz"})

		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Missing or invalid Authorization header")
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("スコープ不足は403", func(t *testing.T) {
		m, authenticator := newAuthMiddleware(t)
		router := gin.New()
		router.GET("/p", m.RequireToken(auth.ScopePartnerRentals), echoPrincipal)

		authenticator.EXPECT().ResolveBearer("abc", []string{auth.ScopePartnerRentals}).
			Return(auth.Principal{}, auth.NewInsufficientScope([]string{auth.ScopePartnerRentals}))

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/p", nil, "abc")

		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Missing scopes: ['partner.rentals']")
		assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("無効なトークンは401", func(t *testing.T) {
		m, authenticator := newAuthMiddleware(t)
		router := gin.New()
		router.GET("/p", m.RequireToken(), echoPrincipal)

		authenticator.EXPECT().ResolveBearer("abc", gomock.Any()).
			Return(auth.Principal{}, auth.NewError(auth.InvalidToken, "Invalid token"))

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/p", nil, "abc")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid token")
	})
}

func TestRequireActor(t *testing.T) {
	t.Run("APIキーのみで解決する", func(t *testing.T) {
		m, authenticator := newAuthMiddleware(t)
		router := gin.New()
		router.POST("/a", m.RequireActor(auth.ScopeRentalsWrite), echoPrincipal)

		authenticator.EXPECT().
			ResolveActor(gomock.Any(), usecase.Credentials{APIKey: "k-1"}, []string{auth.ScopeRentalsWrite}).
			Return(auth.APIKeyPrincipal("service-a"), nil)

		rec := httptest.PerformRaw(t, router, http.MethodPost, "/a", nil, map[string]string{"X-API-Key": "  k-1 "})

		var got map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &got)
		assert.Equal(t, "api_key", got["kind"])
		assert.Equal(t, "service-a", got["subject"])
	})

	t.Run("空のBearerは未提示として扱う", func(t *testing.T) {
		m, authenticator := newAuthMiddleware(t)
		router := gin.New()
		router.POST("/a", m.RequireActor(), echoPrincipal)

		authenticator.EXPECT().ResolveActor(gomock.Any(), usecase.Credentials{APIKey: "k-1"}, gomock.Any()).
			Return(auth.APIKeyPrincipal("service-a"), nil)

		rec := httptest.PerformRaw(t, router, http.MethodPost, "/a", nil,
			map[string]string{"X-API-Key": "k-1", "Authorization": "Bearer   "})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}

func TestGetPrincipal_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", echoPrincipal)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/x", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
