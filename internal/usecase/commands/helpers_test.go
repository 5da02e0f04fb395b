//go:build unit

package commands_test

import (
	"context"
	"testing"

	"bookride-api/internal/usecase/shared"
	sharedmock "bookride-api/tests/mock/shared"

	"go.uber.org/mock/gomock"
)

type uowFixture struct {
	uow *sharedmock.MockUnitOfWork
	tx  *sharedmock.MockTx
}

func newUoWFixture(t *testing.T) (*gomock.Controller, uowFixture) {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := uowFixture{
		uow: sharedmock.NewMockUnitOfWork(ctrl),
		tx:  sharedmock.NewMockTx(ctrl),
	}
	return ctrl, f
}

// expectWithin runs the transaction body against the mock Tx.
func (f uowFixture) expectWithin() {
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		})
}
