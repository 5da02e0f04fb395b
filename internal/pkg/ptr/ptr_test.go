//go:build unit

package ptr_test

import (
	"testing"
	"time"

	"bookride-api/internal/pkg/ptr"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	minutes := 12
	price := 3.0
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NotNil(t, ptr.IntFromPgtype(ptr.ToInt4(&minutes)))
	assert.Equal(t, minutes, *ptr.IntFromPgtype(ptr.ToInt4(&minutes)))
	assert.Equal(t, price, *ptr.Float64FromPgtype(ptr.ToFloat8(&price)))
	assert.True(t, at.Equal(*ptr.TimeFromPgtype(ptr.ToTimestamptz(&at))))

	assert.Nil(t, ptr.IntFromPgtype(pgtype.Int4{}))
	assert.Nil(t, ptr.Float64FromPgtype(ptr.ToFloat8(nil)))
	assert.Nil(t, ptr.TimeFromPgtype(ptr.ToTimestamptz(nil)))
}
