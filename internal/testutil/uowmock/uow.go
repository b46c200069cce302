package uowmock

import (
	"context"
	"errors"

	"farmtally-backend/internal/domain/lorry"
	"farmtally-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLorryTxFn func(ctx context.Context, orgID, lorryID string, fn func(r uow.Repos, l *lorry.Lorry) error) error
}

// Passthrough builds a UoW whose transactions simply run against the
// given repos, and whose lorry tx hands over the given lorry. Most
// usecase tests only need this.
func Passthrough(r uow.Repos, l *lorry.Lorry) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinLorryTxFn: func(ctx context.Context, orgID, lorryID string, fn func(r uow.Repos, l *lorry.Lorry) error) error {
			if l == nil {
				return errUnimplemented
			}
			return fn(r, l)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLorryTx(ctx context.Context, orgID, lorryID string, fn func(r uow.Repos, l *lorry.Lorry) error) error {
	if m.WithinLorryTxFn != nil {
		return m.WithinLorryTxFn(ctx, orgID, lorryID, fn)
	}
	return errUnimplemented
}
