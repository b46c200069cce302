package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, a *AdvancePayment) error
	Save(ctx context.Context, a *AdvancePayment) error
	GetByAdvanceID(ctx context.Context, orgID, advanceID string) (*AdvancePayment, error)
	ListByFarmer(ctx context.Context, orgID, farmerID string) ([]AdvancePayment, error)
	// SumCompletedByFarmer is the farmer's outstanding advance balance:
	// SUM(amount) over COMPLETED rows, org- and farmer-scoped, zero
	// when none exist.
	SumCompletedByFarmer(ctx context.Context, orgID, farmerID string) (decimal.Decimal, error)
}
