package request

type StartRentalRequest struct {
	BikeID string `json:"bike_id" binding:"required,min=1"`
}

type StopRentalRequest struct {
	RentalID int64 `json:"rental_id" binding:"required,gt=0"`
}
