//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a decoded request payload before it is sent.
type Mutation func(m map[string]any)

// Field sets key to value, or removes key when value is nil.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// DtoMap round-trips v through JSON so tests can break individual fields.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, f := range muts {
		f(m)
	}
	return m
}

// JSONBody is DtoMap encoded back to bytes, for raw content-negotiated requests.
func JSONBody(t *testing.T, v any, muts ...Mutation) []byte {
	t.Helper()
	b, err := json.Marshal(DtoMap(t, v, muts...))
	require.NoError(t, err)
	return b
}
