//go:build unit

package rental_test

import (
	"testing"
	"time"

	"bookride-api/internal/domain/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var startedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestStart(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		r, err := rental.Start("42", "bike-7", startedAt.In(time.FixedZone("JST", 9*3600)))
		require.NoError(t, err)

		assert.Equal(t, "42", r.User())
		assert.Equal(t, "bike-7", r.BikeID())
		assert.Equal(t, time.UTC, r.StartedAt().Location())
		assert.True(t, r.StartedAt().Equal(startedAt))
		assert.False(t, r.IsStopped())
		assert.Nil(t, r.PriceEUR())
	})

	t.Run("bike_id未指定はエラー", func(t *testing.T) {
		_, err := rental.Start("42", "", startedAt)
		assert.ErrorIs(t, err, rental.ErrBikeRequired)
	})

	t.Run("利用者未指定はエラー", func(t *testing.T) {
		_, err := rental.Start("", "bike-7", startedAt)
		assert.ErrorIs(t, err, rental.ErrUserRequired)
	})
}

func TestStop(t *testing.T) {
	calc := rental.NewCappedPriceCalculator()

	tests := []struct {
		name         string
		elapsed      time.Duration
		wantMinutes  int
		wantPriceEUR float64
	}{
		{name: "40分", elapsed: 40 * time.Minute, wantMinutes: 40, wantPriceEUR: 10.0},
		{name: "48分で上限到達", elapsed: 48 * time.Minute, wantMinutes: 48, wantPriceEUR: 12.0},
		{name: "100分でも上限", elapsed: 100 * time.Minute, wantMinutes: 100, wantPriceEUR: 12.0},
		{name: "端数は切り捨て", elapsed: 3*time.Minute + 59*time.Second, wantMinutes: 3, wantPriceEUR: 0.75},
		{name: "1分未満は1分", elapsed: 10 * time.Second, wantMinutes: 1, wantPriceEUR: 0.25},
		{name: "時刻逆行でも1分", elapsed: -time.Minute, wantMinutes: 1, wantPriceEUR: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := rental.Start("42", "bike-7", startedAt)
			require.NoError(t, err)

			summary, err := r.Stop(startedAt.Add(tt.elapsed), calc)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMinutes, summary.DurationMin)
			assert.InDelta(t, tt.wantPriceEUR, summary.PriceEUR, 1e-9)
			require.NotNil(t, r.TotalMinutes())
			assert.Equal(t, tt.wantMinutes, *r.TotalMinutes())
			require.NotNil(t, r.PriceEUR())
			assert.InDelta(t, tt.wantPriceEUR, *r.PriceEUR(), 1e-9)
			assert.True(t, r.IsStopped())
		})
	}

	t.Run("二重停止はエラー", func(t *testing.T) {
		r, err := rental.Start("42", "bike-7", startedAt)
		require.NoError(t, err)

		_, err = r.Stop(startedAt.Add(5*time.Minute), calc)
		require.NoError(t, err)

		_, err = r.Stop(startedAt.Add(10*time.Minute), calc)
		assert.ErrorIs(t, err, rental.ErrAlreadyStopped)
		assert.Equal(t, 5, *r.TotalMinutes())
	})
}

func TestOwnedBy(t *testing.T) {
	r := rental.ReconstructRental(1, "alice", "bike-1", startedAt, nil, nil, nil)
	assert.True(t, r.OwnedBy("alice"))
	assert.False(t, r.OwnedBy("bob"))
}
