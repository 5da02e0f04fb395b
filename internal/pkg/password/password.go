// Package password hashes user passwords and pre-shared API keys with bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest input bcrypt accepts. API keys count their pepper
// toward it.
const MaxBytes = 72

var (
	ErrHashingFailed    = errors.New("password hashing failed")
	ErrComparisonFailed = errors.New("password comparison failed")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrTooLong          = errors.New("password exceeds 72 bytes")
)

func HashPassword(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrInvalidPassword
	case len(plain) > MaxBytes:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

func ComparePassword(hashed, plain string) error {
	if hashed == "" || plain == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrComparisonFailed
	}
	return err
}

// HashAPIKey hashes a pre-shared key with the server pepper prepended.
func HashAPIKey(pepper, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidPassword
	}
	return HashPassword(pepper + key)
}

// MatchAPIKey reports whether key matches a stored API key hash. Malformed
// hashes never match.
func MatchAPIKey(hashed, pepper, key string) bool {
	if key == "" {
		return false
	}
	return ComparePassword(hashed, pepper+key) == nil
}
