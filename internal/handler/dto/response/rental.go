package response

import (
	"time"

	"bookride-api/internal/usecase/commands"
)

type StartRentalResponse struct {
	RentalID  int64     `json:"rental_id"`
	StartedAt time.Time `json:"started_at"`
}

func NewStartRentalResponse(r *commands.StartRentalResult) StartRentalResponse {
	return StartRentalResponse{RentalID: r.RentalID, StartedAt: r.StartedAt}
}

type StopRentalResponse struct {
	DurationMin int     `json:"duration_min"`
	PriceEUR    float64 `json:"price_eur"`
}

func NewStopRentalResponse(r *commands.StopRentalResult) StopRentalResponse {
	return StopRentalResponse{DurationMin: r.DurationMin, PriceEUR: r.PriceEUR}
}
