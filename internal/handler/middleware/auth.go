package middleware

import (
	"strconv"
	"strings"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/handler/httperr"
	"bookride-api/internal/pkg/config"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/usecase"
	"bookride-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	ctxPrincipalKey   = "principal"
	ctxCurrentUserKey = "current_user"

	msgMissingBearer = "Missing or invalid Authorization header"
	msgInvalidToken  = "Invalid token"
	msgUserNotFound  = "User not found"
)

type AuthMiddleware struct {
	authenticator usecase.Authenticator
	users         queries.UserQueries
	apiKeyHeader  string
}

func NewAuthMiddleware(authenticator usecase.Authenticator, users queries.UserQueries, cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		users:         users,
		apiKeyHeader:  cfg.APIKey.Header,
	}
}

// RequireUser resolves the bearer token to a stored user.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			httperr.Unauthorized(c, auth.ErrCredentialRequired, msgMissingBearer)
			return
		}

		principal, err := m.authenticator.ResolveBearer(token, nil)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		userID, err := strconv.ParseInt(principal.Subject, 10, 64)
		if err != nil {
			httperr.Unauthorized(c, auth.ErrInvalidToken, msgInvalidToken)
			return
		}

		current, err := m.users.GetCurrentUser(c.Request.Context(), userID)
		if err != nil {
			if errs.Is(err, errs.ErrUserNotFound) {
				httperr.Unauthorized(c, err, msgUserNotFound)
				return
			}
			httperr.Abort(c, err)
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Set(ctxCurrentUserKey, current)
		c.Next()
	}
}

// RequireToken accepts only bearer tokens granting every scope listed.
func (m *AuthMiddleware) RequireToken(scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			httperr.Unauthorized(c, auth.ErrCredentialRequired, msgMissingBearer)
			return
		}

		principal, err := m.authenticator.ResolveBearer(token, scopes)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Next()
	}
}

// RequireActor prefers a bearer token and falls back to the API key
// header. Scopes only apply to token principals.
func (m *AuthMiddleware) RequireActor(scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := usecase.Credentials{APIKey: strings.TrimSpace(c.GetHeader(m.apiKeyHeader))}
		if token, ok := bearerToken(c); ok {
			creds.Bearer = &token
		}

		principal, err := m.authenticator.ResolveActor(c.Request.Context(), creds, scopes)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func GetCurrentUser(c *gin.Context) (*queries.UserView, bool) {
	v, exists := c.Get(ctxCurrentUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*queries.UserView)
	return u, ok
}
