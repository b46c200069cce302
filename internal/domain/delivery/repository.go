package delivery

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, d *Delivery) error
	Save(ctx context.Context, d *Delivery) error
	Delete(ctx context.Context, d *Delivery) error
	GetByDeliveryID(ctx context.Context, orgID, deliveryID string) (*Delivery, error)
	// GetOpenByLorryFarmer finds the farmer's active (PENDING or
	// IN_PROGRESS) delivery on a lorry, the duplicate-add guard.
	GetOpenByLorryFarmer(ctx context.Context, lorryID, farmerID string) (*Delivery, error)
	ListByLorry(ctx context.Context, lorryID string) ([]Delivery, error)
	CountByLorryAndStatus(ctx context.Context, lorryID string, status Status) (int64, error)
	// CountOpenByLorry counts deliveries not yet COMPLETED, the guard
	// against deleting a lorry mid-run.
	CountOpenByLorry(ctx context.Context, lorryID string) (int64, error)
	// BulkTransition moves every delivery of the lorry in `from` to
	// `to`, stamping the matching timestamp column. Safe to call when
	// nothing matches.
	BulkTransition(ctx context.Context, lorryID string, from, to Status, at time.Time) error
}
