package commands

import (
	"context"
	"strings"

	"bookride-api/internal/domain/user"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/pkg/password"
	"bookride-api/internal/usecase/shared"
)

var ErrAPIKeyNameRequired = errs.New("api key name is required")

// AdminCommands provision credentials for operators.
type AdminCommands interface {
	UpsertAPIKey(ctx context.Context, name, key string) error
	UpsertUser(ctx context.Context, credentials user.Credentials, role user.Role, scopes []string) (int64, error)
}

type adminCommandsImpl struct {
	uow    shared.UnitOfWork
	pepper string
}

func NewAdminCommands(uow shared.UnitOfWork, pepper string) AdminCommands {
	return &adminCommandsImpl{uow: uow, pepper: pepper}
}

func (uc *adminCommandsImpl) UpsertAPIKey(ctx context.Context, name, key string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrAPIKeyNameRequired
	}

	hash, err := password.HashAPIKey(uc.pepper, key)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidationFailed)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.APIKeys().Upsert(ctx, name, hash, true)
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (uc *adminCommandsImpl) UpsertUser(ctx context.Context, credentials user.Credentials, role user.Role, scopes []string) (int64, error) {
	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDomainValidationFailed)
	}

	u := user.NewUser(credentials.Email(), hash, role, scopes)

	var id int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		upserted, uerr := tx.Users().UpsertByEmail(ctx, u)
		if uerr != nil {
			return uerr
		}
		id = upserted
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return id, nil
}
