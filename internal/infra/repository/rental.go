package repository

import (
	"context"
	"errors"
	"time"

	"bookride-api/internal/domain/rental"
	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
	"bookride-api/internal/pkg/ptr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	createRentalSQL = `
INSERT INTO rentals (owner, bike_id, started_at)
VALUES ($1, $2, $3)
RETURNING id`

	findRentalForUpdateSQL = `
SELECT id, owner, bike_id, started_at, stopped_at, total_minutes, price_eur
FROM rentals
WHERE id = $1
FOR UPDATE`

	// stopped_at IS NULL re-verifies the open state at commit time.
	markRentalStoppedSQL = `
UPDATE rentals
SET stopped_at = $2, total_minutes = $3, price_eur = $4
WHERE id = $1 AND stopped_at IS NULL`
)

type RentalRepository struct {
	db db.DBTX
}

func NewRentalRepository(db db.DBTX) *RentalRepository {
	return &RentalRepository{db: db}
}

func (r *RentalRepository) Create(ctx context.Context, rt *rental.Rental) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, createRentalSQL, rt.User(), rt.BikeID(), rt.StartedAt()).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create rental", err)
	}
	return id, nil
}

func (r *RentalRepository) FindByIDForUpdate(ctx context.Context, id int64) (*rental.Rental, error) {
	var (
		rentalID     int64
		owner        string
		bikeID       string
		startedAt    time.Time
		stoppedAt    pgtype.Timestamptz
		totalMinutes pgtype.Int4
		priceEUR     pgtype.Float8
	)
	err := r.db.QueryRow(ctx, findRentalForUpdateSQL, id).
		Scan(&rentalID, &owner, &bikeID, &startedAt, &stoppedAt, &totalMinutes, &priceEUR)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental", err)
	}

	return rental.ReconstructRental(
		rentalID,
		owner,
		bikeID,
		startedAt.UTC(),
		ptr.TimeFromPgtype(stoppedAt),
		ptr.IntFromPgtype(totalMinutes),
		ptr.Float64FromPgtype(priceEUR),
	), nil
}

func (r *RentalRepository) MarkStopped(ctx context.Context, rt *rental.Rental) error {
	tag, err := r.db.Exec(ctx, markRentalStoppedSQL,
		rt.ID(),
		ptr.ToTimestamptz(rt.StoppedAt()),
		ptr.ToInt4(rt.TotalMinutes()),
		ptr.ToFloat8(rt.PriceEUR()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to stop rental", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rental already stopped", nil, infra.KindConflict)
	}
	return nil
}
