package auth

import (
	"fmt"
	"strings"
)

type ErrorKind int

const (
	CredentialRequired ErrorKind = iota + 1
	InvalidToken
	InvalidCredential
	InsufficientScope
)

// Error is an authentication or authorization failure. Missing is set for
// InsufficientScope.
type Error struct {
	Kind    ErrorKind
	Message string
	Missing []string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrCredentialRequired = &Error{Kind: CredentialRequired}
	ErrInvalidToken       = &Error{Kind: InvalidToken}
	ErrInvalidCredential  = &Error{Kind: InvalidCredential}
	ErrInsufficientScope  = &Error{Kind: InsufficientScope}
)

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func NewInsufficientScope(missing []string) *Error {
	quoted := make([]string, len(missing))
	for i, s := range missing {
		quoted[i] = "'" + s + "'"
	}
	return &Error{
		Kind:    InsufficientScope,
		Message: fmt.Sprintf("Missing scopes: [%s]", strings.Join(quoted, ", ")),
		Missing: missing,
	}
}
