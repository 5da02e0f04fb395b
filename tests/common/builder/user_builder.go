//go:build unit || e2e

package builder

import (
	"time"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/domain/user"
	"bookride-api/internal/usecase/queries"
)

type UserBuilder struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	Scopes       string
	CreatedAt    time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		Role:         "user",
		Scopes:       "",
		CreatedAt:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.ReconstructUser(u.ID, email, u.PasswordHash, role, auth.ParseScopes(u.Scopes), u.CreatedAt), nil
}

func (u *UserBuilder) BuildReadModel() *queries.UserView {
	return &queries.UserView{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Scopes:    u.Scopes,
		CreatedAt: u.CreatedAt,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id int64) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithScopes(scopes string) *UserBuilder {
	u.Scopes = scopes
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) AsPartner() *UserBuilder {
	u.Role = "partner"
	u.Scopes = auth.ScopePartnerRentals + " " + auth.ScopeRentalsWrite
	return u
}
