package advancemock

import (
	"context"

	domain "farmtally-backend/internal/domain/advance"

	"github.com/shopspring/decimal"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, a *domain.AdvancePayment) error
	SaveFn                 func(ctx context.Context, a *domain.AdvancePayment) error
	GetByAdvanceIDFn       func(ctx context.Context, orgID, advanceID string) (*domain.AdvancePayment, error)
	ListByFarmerFn         func(ctx context.Context, orgID, farmerID string) ([]domain.AdvancePayment, error)
	SumCompletedByFarmerFn func(ctx context.Context, orgID, farmerID string) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.AdvancePayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.AdvancePayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAdvanceID(ctx context.Context, orgID, advanceID string) (*domain.AdvancePayment, error) {
	if m.GetByAdvanceIDFn != nil {
		return m.GetByAdvanceIDFn(ctx, orgID, advanceID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByFarmer(ctx context.Context, orgID, farmerID string) ([]domain.AdvancePayment, error) {
	if m.ListByFarmerFn != nil {
		return m.ListByFarmerFn(ctx, orgID, farmerID)
	}
	return nil, nil
}

func (m *Repo) SumCompletedByFarmer(ctx context.Context, orgID, farmerID string) (decimal.Decimal, error) {
	if m.SumCompletedByFarmerFn != nil {
		return m.SumCompletedByFarmerFn(ctx, orgID, farmerID)
	}
	return decimal.Zero, nil
}
