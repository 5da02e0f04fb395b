//go:build unit || e2e

package authtest

import (
	"encoding/json"
	"net/http"
	"testing"

	"bookride-api/internal/handler/dto/request"
	resdto "bookride-api/internal/handler/dto/response"
	"bookride-api/tests/common/dbtest"
	"bookride-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res resdto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, "bearer", res.TokenType)
	require.NotEmpty(t, res.AccessToken, "access token missing from login response")

	return res.AccessToken
}

// CreateAndLogin seeds a user with the default test password and logs in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, scopes string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, "user", scopes)
	return LoginUser(t, router, email, dbtest.DefaultPassword)
}
