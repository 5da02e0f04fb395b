package shared

import (
	"context"

	"bookride-api/internal/domain/book"
	"bookride-api/internal/domain/partnerrental"
	"bookride-api/internal/domain/rental"
	"bookride-api/internal/domain/user"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Books() BookRepository
	PartnerRentals() PartnerRentalRepository
	Rentals() RentalRepository
	Users() UserRepository
	APIKeys() APIKeyRepository
}

// Upserts are last-writer-wins on the caller supplied id.
type BookRepository interface {
	Upsert(ctx context.Context, b *book.Book) error
}

type PartnerRentalRepository interface {
	Upsert(ctx context.Context, r *partnerrental.PartnerRental) error
}

type RentalRepository interface {
	Create(ctx context.Context, r *rental.Rental) (int64, error)
	// FindByIDForUpdate locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*rental.Rental, error)
	// MarkStopped only updates a rental that is still open and reports
	// KindConflict otherwise.
	MarkStopped(ctx context.Context, r *rental.Rental) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (int64, error)
	UpsertByEmail(ctx context.Context, u *user.User) (int64, error)
}

type APIKeyRepository interface {
	Upsert(ctx context.Context, name, keyHash string, active bool) error
}
