package response

import (
	"bookride-api/internal/usecase/commands"
	"bookride-api/internal/usecase/queries"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewTokenResponse(r *commands.TokenResult) TokenResponse {
	return TokenResponse{AccessToken: r.AccessToken, TokenType: r.TokenType}
}

type MeResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewMeResponse(u *queries.UserView) MeResponse {
	return MeResponse{ID: u.ID, Email: u.Email, Role: u.Role}
}
