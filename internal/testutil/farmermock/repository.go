package farmermock

import (
	"context"

	domain "farmtally-backend/internal/domain/farmer"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the methods a test needs.
type Repo struct {
	CreateFn        func(ctx context.Context, f *domain.Farmer) error
	SaveFn          func(ctx context.Context, f *domain.Farmer) error
	GetByFarmerIDFn func(ctx context.Context, orgID, farmerID string) (*domain.Farmer, error)
	ListFn          func(ctx context.Context, orgID string) ([]domain.Farmer, error)
}

func (m *Repo) Create(ctx context.Context, f *domain.Farmer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, f *domain.Farmer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, f)
	}
	return nil
}

func (m *Repo) GetByFarmerID(ctx context.Context, orgID, farmerID string) (*domain.Farmer, error) {
	if m.GetByFarmerIDFn != nil {
		return m.GetByFarmerIDFn(ctx, orgID, farmerID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, orgID string) ([]domain.Farmer, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, orgID)
	}
	return nil, nil
}
