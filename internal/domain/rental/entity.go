package rental

import (
	"errors"
	"time"
)

var (
	ErrBikeRequired   = errors.New("bike id is required")
	ErrUserRequired   = errors.New("user is required")
	ErrAlreadyStopped = errors.New("rental already stopped")
)

// Rental is a ride started and stopped by one actor. It is created by
// Start, closed exactly once by Stop and immutable afterwards.
type Rental struct {
	id           int64
	user         string
	bikeID       string
	startedAt    time.Time
	stoppedAt    *time.Time
	totalMinutes *int
	priceEUR     *float64
}

// Summary is the outcome of stopping a rental.
type Summary struct {
	StoppedAt   time.Time
	DurationMin int
	PriceEUR    float64
}

func Start(user, bikeID string, now time.Time) (*Rental, error) {
	if user == "" {
		return nil, ErrUserRequired
	}
	if bikeID == "" {
		return nil, ErrBikeRequired
	}
	return &Rental{
		user:      user,
		bikeID:    bikeID,
		startedAt: now.UTC(),
	}, nil
}

func ReconstructRental(
	id int64,
	user, bikeID string,
	startedAt time.Time,
	stoppedAt *time.Time,
	totalMinutes *int,
	priceEUR *float64,
) *Rental {
	return &Rental{
		id:           id,
		user:         user,
		bikeID:       bikeID,
		startedAt:    startedAt,
		stoppedAt:    stoppedAt,
		totalMinutes: totalMinutes,
		priceEUR:     priceEUR,
	}
}

// Stop closes the rental at now and prices it with calc.
func (r *Rental) Stop(now time.Time, calc PriceCalculator) (Summary, error) {
	if r.IsStopped() {
		return Summary{}, ErrAlreadyStopped
	}

	stoppedAt := now.UTC()
	minutes := DurationMinutes(r.startedAt, stoppedAt)
	price := calc.PriceEUR(minutes)

	r.stoppedAt = &stoppedAt
	r.totalMinutes = &minutes
	r.priceEUR = &price

	return Summary{StoppedAt: stoppedAt, DurationMin: minutes, PriceEUR: price}, nil
}

// DurationMinutes counts whole elapsed minutes, never less than one.
func DurationMinutes(start, stop time.Time) int {
	minutes := int(stop.Sub(start) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}

func (r *Rental) IsStopped() bool {
	return r.stoppedAt != nil
}

func (r *Rental) OwnedBy(user string) bool {
	return r.user == user
}

func (r *Rental) ID() int64             { return r.id }
func (r *Rental) User() string          { return r.user }
func (r *Rental) BikeID() string        { return r.bikeID }
func (r *Rental) StartedAt() time.Time  { return r.startedAt }
func (r *Rental) StoppedAt() *time.Time { return r.stoppedAt }
func (r *Rental) TotalMinutes() *int    { return r.totalMinutes }
func (r *Rental) PriceEUR() *float64    { return r.priceEUR }
