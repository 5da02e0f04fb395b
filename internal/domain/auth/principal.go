package auth

import (
	"strings"
)

const (
	ScopePartnerRentals = "partner.rentals"
	ScopeRentalsWrite   = "rentals:write"
)

type PrincipalKind string

const (
	KindToken  PrincipalKind = "token"
	KindAPIKey PrincipalKind = "api_key"
)

// Principal is the caller identity resolved for one request. Token
// principals carry the subject and its scopes; API key principals carry
// only the key's name in Subject.
type Principal struct {
	Kind    PrincipalKind
	Subject string
	Scopes  []string
	Email   string
	Role    string
}

func TokenPrincipal(subject string, scopes []string, email, role string) Principal {
	return Principal{Kind: KindToken, Subject: subject, Scopes: scopes, Email: email, Role: role}
}

func APIKeyPrincipal(name string) Principal {
	return Principal{Kind: KindAPIKey, Subject: name}
}

// APIKeyIdentityPrefix keeps key names out of the token subject namespace.
const APIKeyIdentityPrefix = string(KindAPIKey) + ":"

// Identity is the string stored as the owner of actor-scoped records.
// API key identities carry APIKeyIdentityPrefix.
func (p Principal) Identity() string {
	if p.Kind == KindAPIKey {
		return APIKeyIdentityPrefix + p.Subject
	}
	return p.Subject
}

// ValidSubject reports whether a token subject can be used as an identity.
func ValidSubject(sub string) bool {
	return sub != "" && !strings.HasPrefix(sub, APIKeyIdentityPrefix)
}

// ParseScopes splits a space-delimited scope claim.
func ParseScopes(claim string) []string {
	return strings.Fields(claim)
}

func JoinScopes(scopes []string) string {
	return strings.Join(scopes, " ")
}

// MissingScopes lists the required scopes absent from granted, in the
// order they were required.
func MissingScopes(granted, required []string) []string {
	have := make(map[string]struct{}, len(granted))
	for _, s := range granted {
		have[s] = struct{}{}
	}
	var missing []string
	for _, s := range required {
		if _, ok := have[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}
