package repository

import (
	"context"

	"bookride-api/internal/domain/partnerrental"
	"bookride-api/internal/infra"
	"bookride-api/internal/infra/db"
	"bookride-api/internal/pkg/ptr"
)

const upsertPartnerRentalSQL = `
INSERT INTO partner_rentals (id, user_id, bike_id, start_time, end_time, price_eur)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
	user_id    = EXCLUDED.user_id,
	bike_id    = EXCLUDED.bike_id,
	start_time = EXCLUDED.start_time,
	end_time   = EXCLUDED.end_time,
	price_eur  = EXCLUDED.price_eur`

type PartnerRentalRepository struct {
	db db.DBTX
}

func NewPartnerRentalRepository(db db.DBTX) *PartnerRentalRepository {
	return &PartnerRentalRepository{db: db}
}

func (r *PartnerRentalRepository) Upsert(ctx context.Context, pr *partnerrental.PartnerRental) error {
	_, err := r.db.Exec(ctx, upsertPartnerRentalSQL,
		pr.ID(),
		pr.UserID(),
		pr.BikeID(),
		pr.StartTime(),
		ptr.ToTimestamptz(pr.EndTime()),
		pr.PriceEUR(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert partner rental", err)
	}
	return nil
}
