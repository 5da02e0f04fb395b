package commands

import (
	"context"
	"strconv"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/domain/user"
	"bookride-api/internal/infra"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/pkg/jwt"
	"bookride-api/internal/pkg/password"
	"bookride-api/internal/usecase/queries"
	"bookride-api/internal/usecase/shared"
)

const TokenTypeBearer = "bearer"

type TokenResult struct {
	AccessToken string
	TokenType   string
}

// TokenIssuer mints bearer tokens. Context claims are passed explicitly.
type TokenIssuer interface {
	GenerateToken(subject string, scopes string, ctxClaims jwt.ContextClaims) (string, error)
}

type AuthCommands interface {
	Register(ctx context.Context, credentials user.Credentials) (*TokenResult, error)
	Login(ctx context.Context, email, plainPassword string) (*TokenResult, error)
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	issuer    TokenIssuer
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, issuer TokenIssuer) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		readStore: readStore,
		issuer:    issuer,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, credentials user.Credentials) (*TokenResult, error) {
	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidationFailed)
	}

	u := user.NewUser(credentials.Email(), hash, user.RoleUser, nil)

	var id int64
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, cerr := tx.Users().Create(ctx, u)
		if cerr != nil {
			return cerr
		}
		id = created
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrEmailTaken
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return a.issue(id, u.Email().Value(), u.Role().String(), u.Scopes())
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*TokenResult, error) {
	view, hash, err := a.readStore.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(hash, plainPassword); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	return a.issue(view.ID, view.Email, view.Role, auth.ParseScopes(view.Scopes))
}

func (a *authCommandsImpl) issue(id int64, email, role string, scopes []string) (*TokenResult, error) {
	token, err := a.issuer.GenerateToken(strconv.FormatInt(id, 10), auth.JoinScopes(scopes), jwt.ContextClaims{
		Email: email,
		Role:  role,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTokenGeneration)
	}
	return &TokenResult{AccessToken: token, TokenType: TokenTypeBearer}, nil
}
