package lorrymock

import (
	"context"

	domain "farmtally-backend/internal/domain/lorry"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, l *domain.Lorry) error
	SaveFn                  func(ctx context.Context, l *domain.Lorry) error
	DeleteFn                func(ctx context.Context, l *domain.Lorry) error
	GetByLorryIDFn          func(ctx context.Context, orgID, lorryID string) (*domain.Lorry, error)
	GetByLorryIDForUpdateFn func(ctx context.Context, orgID, lorryID string) (*domain.Lorry, error)
	GetByPlateFn            func(ctx context.Context, orgID, plateNumber string) (*domain.Lorry, error)
	ListFn                  func(ctx context.Context, orgID string) ([]domain.Lorry, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Lorry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Lorry) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, l *domain.Lorry) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLorryID(ctx context.Context, orgID, lorryID string) (*domain.Lorry, error) {
	if m.GetByLorryIDFn != nil {
		return m.GetByLorryIDFn(ctx, orgID, lorryID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLorryIDForUpdate(ctx context.Context, orgID, lorryID string) (*domain.Lorry, error) {
	if m.GetByLorryIDForUpdateFn != nil {
		return m.GetByLorryIDForUpdateFn(ctx, orgID, lorryID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByPlate(ctx context.Context, orgID, plateNumber string) (*domain.Lorry, error) {
	if m.GetByPlateFn != nil {
		return m.GetByPlateFn(ctx, orgID, plateNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, orgID string) ([]domain.Lorry, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, orgID)
	}
	return nil, nil
}
