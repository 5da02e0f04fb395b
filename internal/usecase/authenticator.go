package usecase

import (
	"context"
	"log/slog"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/pkg/jwt"
	"bookride-api/internal/pkg/password"
	"bookride-api/internal/usecase/queries"
)

const (
	msgInvalidToken       = "Invalid token"
	msgMissingAPIKey      = "Missing API key"
	msgInvalidAPIKey      = "Invalid API key"
	msgCredentialRequired = "Authorization header or API key required"
)

// TokenVerifier validates bearer tokens for the middleware
type TokenVerifier interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// Credentials are what a request presented. A nil Bearer means no
// Authorization: Bearer header was sent.
type Credentials struct {
	Bearer *string
	APIKey string
}

type Authenticator interface {
	ResolveBearer(token string, scopes []string) (auth.Principal, error)
	ResolveAPIKey(ctx context.Context, key string) (auth.Principal, error)
	// ResolveActor prefers the bearer token. An invalid token fails the
	// request even when a valid API key is also present.
	ResolveActor(ctx context.Context, creds Credentials, scopes []string) (auth.Principal, error)
}

type authenticatorImpl struct {
	tokens  TokenVerifier
	apiKeys queries.APIKeyReadStore
	pepper  string
}

func NewAuthenticator(tokens TokenVerifier, apiKeys queries.APIKeyReadStore, pepper string) Authenticator {
	return &authenticatorImpl{
		tokens:  tokens,
		apiKeys: apiKeys,
		pepper:  pepper,
	}
}

func (a *authenticatorImpl) ResolveBearer(token string, scopes []string) (auth.Principal, error) {
	claims, err := a.tokens.ValidateToken(token)
	if err != nil || !auth.ValidSubject(claims.Subject) {
		return auth.Principal{}, auth.NewError(auth.InvalidToken, msgInvalidToken)
	}

	granted := auth.ParseScopes(claims.Scope)
	if missing := auth.MissingScopes(granted, scopes); len(missing) > 0 {
		return auth.Principal{}, auth.NewInsufficientScope(missing)
	}

	return auth.TokenPrincipal(claims.Subject, granted, claims.Email, claims.Role), nil
}

func (a *authenticatorImpl) ResolveAPIKey(ctx context.Context, key string) (auth.Principal, error) {
	if key == "" {
		return auth.Principal{}, auth.NewError(auth.CredentialRequired, msgMissingAPIKey)
	}

	keys, err := a.apiKeys.ListActive(ctx)
	if err != nil {
		return auth.Principal{}, err
	}

	for _, k := range keys {
		if password.MatchAPIKey(k.KeyHash, a.pepper, key) {
			return auth.APIKeyPrincipal(k.Name), nil
		}
	}

	slog.WarnContext(ctx, "api key rejected", "active_keys", len(keys))
	return auth.Principal{}, auth.NewError(auth.InvalidCredential, msgInvalidAPIKey)
}

func (a *authenticatorImpl) ResolveActor(ctx context.Context, creds Credentials, scopes []string) (auth.Principal, error) {
	if creds.Bearer != nil {
		return a.ResolveBearer(*creds.Bearer, scopes)
	}
	if creds.APIKey != "" {
		return a.ResolveAPIKey(ctx, creds.APIKey)
	}
	return auth.Principal{}, auth.NewError(auth.CredentialRequired, msgCredentialRequired)
}
