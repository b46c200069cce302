package lorry

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lorry) error
	GetByLorryID(ctx context.Context, orgID, lorryID string) (*Lorry, error)
	// GetByLorryIDForUpdate locks the lorry row (SELECT ... FOR UPDATE)
	// so aggregate counter updates serialize across the transaction.
	GetByLorryIDForUpdate(ctx context.Context, orgID, lorryID string) (*Lorry, error)
	GetByPlate(ctx context.Context, orgID, plateNumber string) (*Lorry, error)
	List(ctx context.Context, orgID string) ([]Lorry, error)
	Save(ctx context.Context, l *Lorry) error
	Delete(ctx context.Context, l *Lorry) error
}
