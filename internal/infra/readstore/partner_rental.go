package readstore

import (
	"context"
	"errors"
	"time"

	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
	"bookride-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const findPartnerRentalByIDSQL = `
SELECT id, user_id, bike_id, start_time, end_time, price_eur
FROM partner_rentals
WHERE id = $1`

type partnerRentalRow struct {
	ID        int64
	UserID    int64
	BikeID    string
	StartTime time.Time
	EndTime   pgtype.Timestamptz
	PriceEUR  float64
}

type PartnerRentalReadStore struct {
	db db.DBTX
}

func NewPartnerRentalReadStore(db db.DBTX) *PartnerRentalReadStore {
	return &PartnerRentalReadStore{db: db}
}

func (s *PartnerRentalReadStore) FindByID(ctx context.Context, id int64) (*queries.PartnerRentalView, error) {
	var row partnerRentalRow
	err := s.db.QueryRow(ctx, findPartnerRentalByIDSQL, id).
		Scan(&row.ID, &row.UserID, &row.BikeID, &row.StartTime, &row.EndTime, &row.PriceEUR)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("partner rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find partner rental by ID", err)
	}

	view, err := toView[queries.PartnerRentalView](&row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to map partner rental", err)
	}
	return view, nil
}
