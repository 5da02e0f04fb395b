package user

import (
	"time"
)

// User is an account that signs in with email and password and receives
// bearer tokens carrying its scopes.
type User struct {
	id           int64
	email        Email
	passwordHash string
	role         Role
	scopes       []string
	createdAt    time.Time
}

// NewUser builds an unsaved account; the store assigns the id.
func NewUser(email Email, passwordHash string, role Role, scopes []string) *User {
	return &User{
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		scopes:       scopes,
	}
}

func ReconstructUser(id int64, email Email, passwordHash string, role Role, scopes []string, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		scopes:       scopes,
		createdAt:    createdAt,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) Scopes() []string     { return u.scopes }
func (u *User) CreatedAt() time.Time { return u.createdAt }
