package uow

import (
	"context"

	"farmtally-backend/internal/domain/advance"
	"farmtally-backend/internal/domain/delivery"
	"farmtally-backend/internal/domain/farmer"
	"farmtally-backend/internal/domain/lorry"
)

type Repos struct {
	Farmers    farmer.Repository
	Lorries    lorry.Repository
	Deliveries delivery.Repository
	Advances   advance.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the lorry row first, then pass it in. Every
	// operation that touches the lorry's aggregate counters or the
	// all-priced flip goes through this, so concurrent pricing edits on
	// sibling deliveries of one lorry serialize on the parent row.
	WithinLorryTx(ctx context.Context, orgID, lorryID string, fn func(r Repos, l *lorry.Lorry) error) error
}
