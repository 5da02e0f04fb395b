package queries

import (
	"time"
)

// BookView represents read-optimized book data
type BookView struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Author  string  `json:"author"`
	Price   float64 `json:"price"`
	InStock bool    `json:"in_stock"`
}

// PartnerRentalView represents read-optimized partner rental data
type PartnerRentalView struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	BikeID    string     `json:"bike_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	PriceEUR  float64    `json:"price_eur"`
}

// UserView represents read-optimized user data with authorization info
type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Scopes    string    `json:"scopes"`
	CreatedAt time.Time `json:"created_at"`
}

// APIKeyView is an active pre-shared key. KeyHash never leaves the server.
type APIKeyView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	KeyHash string `json:"-"`
}
