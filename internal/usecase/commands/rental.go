package commands

import (
	"context"
	"log/slog"
	"time"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/domain/rental"
	"bookride-api/internal/infra"
	"bookride-api/internal/pkg/clock"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/usecase/shared"
)

type StartRentalResult struct {
	RentalID  int64
	StartedAt time.Time
}

type StopRentalResult struct {
	DurationMin int
	PriceEUR    float64
}

type RentalCommands interface {
	Start(ctx context.Context, actor auth.Principal, bikeID string) (*StartRentalResult, error)
	// Stop closes a rental owned by actor. Rentals owned by someone else
	// are reported as not found.
	Stop(ctx context.Context, actor auth.Principal, rentalID int64) (*StopRentalResult, error)
}

type rentalCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	pricing rental.PriceCalculator
}

func NewRentalCommands(uow shared.UnitOfWork, clk clock.Clock, pricing rental.PriceCalculator) RentalCommands {
	return &rentalCommandsImpl{uow: uow, clock: clk, pricing: pricing}
}

func (uc *rentalCommandsImpl) Start(ctx context.Context, actor auth.Principal, bikeID string) (*StartRentalResult, error) {
	r, err := rental.Start(actor.Identity(), bikeID, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidationFailed)
	}

	var id int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, cerr := tx.Rentals().Create(ctx, r)
		if cerr != nil {
			return cerr
		}
		id = created
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.InfoContext(ctx, "user action",
		"action", "rental_start",
		"user_id", actor.Identity(),
		"bike_id", bikeID,
		"rental_id", id)

	return &StartRentalResult{RentalID: id, StartedAt: r.StartedAt()}, nil
}

func (uc *rentalCommandsImpl) Stop(ctx context.Context, actor auth.Principal, rentalID int64) (*StopRentalResult, error) {
	var summary rental.Summary
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, ferr := tx.Rentals().FindByIDForUpdate(ctx, rentalID)
		if ferr != nil {
			if infra.IsKind(ferr, infra.KindNotFound) {
				return errs.ErrRentalNotFound
			}
			return errs.Mark(ferr, errs.ErrDatabaseOperationFailed)
		}
		if !r.OwnedBy(actor.Identity()) {
			return errs.ErrRentalNotFound
		}

		s, serr := r.Stop(uc.clock.Now(), uc.pricing)
		if serr != nil {
			return errs.Mark(serr, errs.ErrRentalAlreadyStopped)
		}

		if uerr := tx.Rentals().MarkStopped(ctx, r); uerr != nil {
			if infra.IsKind(uerr, infra.KindConflict) {
				return errs.ErrRentalAlreadyStopped
			}
			return errs.Mark(uerr, errs.ErrDatabaseOperationFailed)
		}
		summary = s
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrRentalNotFound) || errs.Is(err, errs.ErrRentalAlreadyStopped) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.InfoContext(ctx, "user action",
		"action", "rental_stop",
		"user_id", actor.Identity(),
		"rental_id", rentalID,
		"duration_min", summary.DurationMin,
		"price_eur", summary.PriceEUR)

	return &StopRentalResult{DurationMin: summary.DurationMin, PriceEUR: summary.PriceEUR}, nil
}
