package queries

import (
	"context"

	"bookride-api/internal/domain/partnerrental"
	"bookride-api/internal/infra"
	"bookride-api/internal/pkg/errs"
)

type PartnerRentalQueries interface {
	Get(ctx context.Context, id int64) (*partnerrental.PartnerRental, error)
}

type PartnerRentalReadStore interface {
	FindByID(ctx context.Context, id int64) (*PartnerRentalView, error)
}

type partnerRentalQueriesImpl struct {
	readStore PartnerRentalReadStore
}

func NewPartnerRentalQueries(readStore PartnerRentalReadStore) PartnerRentalQueries {
	return &partnerRentalQueriesImpl{
		readStore: readStore,
	}
}

func (q *partnerRentalQueriesImpl) Get(ctx context.Context, id int64) (*partnerrental.PartnerRental, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPartnerRentalNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	r, err := partnerrental.NewPartnerRental(view.ID, view.UserID, view.BikeID, view.StartTime, view.EndTime, view.PriceEUR)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidationFailed)
	}
	return r, nil
}
