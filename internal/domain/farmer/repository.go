package farmer

import "context"

type Repository interface {
	Create(ctx context.Context, f *Farmer) error
	GetByFarmerID(ctx context.Context, orgID, farmerID string) (*Farmer, error)
	List(ctx context.Context, orgID string) ([]Farmer, error)
	Save(ctx context.Context, f *Farmer) error
}
