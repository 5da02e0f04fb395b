package jwt

import (
	"errors"
	"fmt"
	"time"

	"bookride-api/internal/pkg/clock"
	"bookride-api/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token expired")
	ErrUnsupportedAlgo = errors.New("unsupported signing algorithm")
)

// Claims carries the subject, its space-delimited scopes and optional
// context about the user the token was minted for.
type Claims struct {
	Scope string `json:"scope"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ContextClaims are stamped into a token alongside the subject.
type ContextClaims struct {
	Email string
	Role  string
}

type Service struct {
	secretKey     []byte
	method        jwt.SigningMethod
	tokenDuration time.Duration
	issuer        string
	audience      string
	clock         clock.Clock
}

func NewService(cfg config.JWTConfig, clk clock.Clock) (*Service, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgo, cfg.Algorithm)
	}
	return &Service{
		secretKey:     []byte(cfg.Secret),
		method:        method,
		tokenDuration: cfg.Expire,
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		clock:         clk,
	}, nil
}

func (s *Service) GenerateToken(subject string, scopes string, ctxClaims ContextClaims) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		Scope: scopes,
		Email: ctxClaims.Email,
		Role:  ctxClaims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
			Issuer:    s.issuer,
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
