//go:build unit || e2e

package authtest

import (
	"strconv"
	"testing"
	"time"

	"bookride-api/internal/pkg/clock"
	"bookride-api/internal/pkg/config"
	"bookride-api/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken signs a token for the user id with space-delimited scopes.
func (h *JWTHelper) GenerateToken(t *testing.T, userID int64, scopes string) string {
	t.Helper()
	return h.GenerateSubjectToken(t, strconv.FormatInt(userID, 10), scopes)
}

func (h *JWTHelper) GenerateSubjectToken(t *testing.T, subject, scopes string) string {
	t.Helper()
	service, err := jwt.NewService(h.cfg, clock.NewRealClock())
	require.NoError(t, err)
	token, err := service.GenerateToken(subject, scopes, jwt.ContextClaims{})
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token whose expiry is already in the past.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID int64, scopes string) string {
	t.Helper()
	service, err := jwt.NewService(h.cfg, clock.NewMockClock(time.Now().Add(-2*h.cfg.Expire-time.Minute)))
	require.NoError(t, err)
	token, err := service.GenerateToken(strconv.FormatInt(userID, 10), scopes, jwt.ContextClaims{})
	require.NoError(t, err)
	return token
}
