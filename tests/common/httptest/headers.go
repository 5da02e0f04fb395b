//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"bookride-api/internal/pkg/codec"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertRendered checks the negotiated media type and that the size headers
// describe the body actually written.
func AssertRendered(t *testing.T, w *httptest.ResponseRecorder, mediaType string) {
	t.Helper()
	AssertHeaders(t, w, map[string]string{
		"Content-Type":         mediaType,
		codec.HeaderBodyLength: strconv.Itoa(w.Body.Len()),
	})
	if pretty := w.Header().Get(codec.HeaderPrettyLength); pretty != "" {
		p, _ := strconv.Atoi(pretty)
		c, _ := strconv.Atoi(w.Header().Get(codec.HeaderCompactLength))
		assert.Equal(t, strconv.Itoa(p-c), w.Header().Get(codec.HeaderLengthDiff))
	}
}
