package deliverymock

import (
	"context"
	"time"

	domain "farmtally-backend/internal/domain/delivery"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, d *domain.Delivery) error
	SaveFn                  func(ctx context.Context, d *domain.Delivery) error
	DeleteFn                func(ctx context.Context, d *domain.Delivery) error
	GetByDeliveryIDFn       func(ctx context.Context, orgID, deliveryID string) (*domain.Delivery, error)
	GetOpenByLorryFarmerFn  func(ctx context.Context, lorryID, farmerID string) (*domain.Delivery, error)
	ListByLorryFn           func(ctx context.Context, lorryID string) ([]domain.Delivery, error)
	CountByLorryAndStatusFn func(ctx context.Context, lorryID string, status domain.Status) (int64, error)
	CountOpenByLorryFn      func(ctx context.Context, lorryID string) (int64, error)
	BulkTransitionFn        func(ctx context.Context, lorryID string, from, to domain.Status, at time.Time) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Delivery) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Delivery) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, d *domain.Delivery) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDeliveryID(ctx context.Context, orgID, deliveryID string) (*domain.Delivery, error) {
	if m.GetByDeliveryIDFn != nil {
		return m.GetByDeliveryIDFn(ctx, orgID, deliveryID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetOpenByLorryFarmer(ctx context.Context, lorryID, farmerID string) (*domain.Delivery, error) {
	if m.GetOpenByLorryFarmerFn != nil {
		return m.GetOpenByLorryFarmerFn(ctx, lorryID, farmerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLorry(ctx context.Context, lorryID string) ([]domain.Delivery, error) {
	if m.ListByLorryFn != nil {
		return m.ListByLorryFn(ctx, lorryID)
	}
	return nil, nil
}

func (m *Repo) CountByLorryAndStatus(ctx context.Context, lorryID string, status domain.Status) (int64, error) {
	if m.CountByLorryAndStatusFn != nil {
		return m.CountByLorryAndStatusFn(ctx, lorryID, status)
	}
	return 0, nil
}

func (m *Repo) CountOpenByLorry(ctx context.Context, lorryID string) (int64, error) {
	if m.CountOpenByLorryFn != nil {
		return m.CountOpenByLorryFn(ctx, lorryID)
	}
	return 0, nil
}

func (m *Repo) BulkTransition(ctx context.Context, lorryID string, from, to domain.Status, at time.Time) error {
	if m.BulkTransitionFn != nil {
		return m.BulkTransitionFn(ctx, lorryID, from, to, at)
	}
	return nil
}
