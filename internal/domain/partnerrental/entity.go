package partnerrental

import (
	"errors"
	"time"

	"bookride-api/internal/pkg/record"
	"bookride-api/internal/pkg/schema"
)

var (
	ErrInvalidID     = errors.New("rental id must be positive")
	ErrInvalidUserID = errors.New("user id must be positive")
	ErrNegativePrice = errors.New("price cannot be negative")
)

// PartnerRental is a rental record pushed by a partner system. Timestamps
// are held in UTC.
type PartnerRental struct {
	id        int64
	userID    int64
	bikeID    string
	startTime time.Time
	endTime   *time.Time
	priceEUR  float64
}

func NewPartnerRental(id, userID int64, bikeID string, startTime time.Time, endTime *time.Time, priceEUR float64) (*PartnerRental, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if priceEUR < 0 {
		return nil, ErrNegativePrice
	}

	var end *time.Time
	if endTime != nil {
		e := endTime.UTC()
		end = &e
	}
	return &PartnerRental{
		id:        id,
		userID:    userID,
		bikeID:    bikeID,
		startTime: startTime.UTC(),
		endTime:   end,
		priceEUR:  priceEUR,
	}, nil
}

func (r *PartnerRental) ID() int64            { return r.id }
func (r *PartnerRental) UserID() int64        { return r.userID }
func (r *PartnerRental) BikeID() string       { return r.bikeID }
func (r *PartnerRental) StartTime() time.Time { return r.startTime }
func (r *PartnerRental) EndTime() *time.Time  { return r.endTime }
func (r *PartnerRental) PriceEUR() float64    { return r.priceEUR }

// Record renders the rental with UTC timestamps; an open rental carries a
// null end_time.
func (r *PartnerRental) Record() *record.Map {
	end := record.Value(record.Null{})
	if r.endTime != nil {
		end = record.String(FormatTime(*r.endTime))
	}
	return record.NewMap().
		Set("id", record.Int(r.id)).
		Set("user_id", record.Int(r.userID)).
		Set("bike_id", record.String(r.bikeID)).
		Set("start_time", record.String(FormatTime(r.startTime))).
		Set("end_time", end).
		Set("price_eur", record.Float(r.priceEUR))
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Parse validates a decoded payload against Schema and builds the entity.
func Parse(v record.Value) (*PartnerRental, error) {
	if err := Schema.Validate(v); err != nil {
		return nil, err
	}
	m := v.(*record.Map)

	id, _ := m.Get("id")
	userID, _ := m.Get("user_id")
	bikeID, _ := m.Get("bike_id")
	start, _ := m.Get("start_time")
	price, _ := m.Get("price_eur")

	startTime, err := schema.ParseDateTime(string(start.(record.String)))
	if err != nil {
		return nil, err
	}

	var endTime *time.Time
	if end, ok := m.Get("end_time"); ok {
		if s, isString := end.(record.String); isString {
			t, err := schema.ParseDateTime(string(s))
			if err != nil {
				return nil, err
			}
			endTime = &t
		}
	}

	return NewPartnerRental(
		record.AsInt(id),
		record.AsInt(userID),
		string(bikeID.(record.String)),
		startTime,
		endTime,
		record.AsFloat(price),
	)
}
