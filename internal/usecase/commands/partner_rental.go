package commands

import (
	"context"

	"bookride-api/internal/domain/partnerrental"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/pkg/record"
	"bookride-api/internal/usecase/shared"
)

type PartnerRentalCommands interface {
	Upsert(ctx context.Context, payload record.Value) (*partnerrental.PartnerRental, error)
}

type partnerRentalCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewPartnerRentalCommands(uow shared.UnitOfWork) PartnerRentalCommands {
	return &partnerRentalCommandsImpl{uow: uow}
}

func (uc *partnerRentalCommandsImpl) Upsert(ctx context.Context, payload record.Value) (*partnerrental.PartnerRental, error) {
	r, err := partnerrental.Parse(payload)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.PartnerRentals().Upsert(ctx, r)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return r, nil
}
