//go:build unit

package api_test

import (
	"fmt"

	"bookride-api/internal/pkg/record"

	"go.uber.org/mock/gomock"
)

// recordEq matches a decoded payload by deep, order-sensitive equality.
func recordEq(want record.Value) gomock.Matcher {
	return recordMatcher{want: want}
}

type recordMatcher struct {
	want record.Value
}

func (m recordMatcher) Matches(x any) bool {
	v, ok := x.(record.Value)
	return ok && record.Equal(m.want, v)
}

func (m recordMatcher) String() string {
	return fmt.Sprintf("is record %v", record.ToAny(m.want))
}

func jsonHeaders(extra ...string) map[string]string {
	h := map[string]string{"Content-Type": "application/json"}
	for i := 0; i+1 < len(extra); i += 2 {
		h[extra[i]] = extra[i+1]
	}
	return h
}
