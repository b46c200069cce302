package mysql

import (
	"context"

	lorryDomain "farmtally-backend/internal/domain/lorry"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LorryRepository struct{ db *gorm.DB }

func NewLorryRepository(db *gorm.DB) *LorryRepository { return &LorryRepository{db: db} }

func (r *LorryRepository) Create(ctx context.Context, l *lorryDomain.Lorry) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LorryRepository) Save(ctx context.Context, l *lorryDomain.Lorry) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LorryRepository) Delete(ctx context.Context, l *lorryDomain.Lorry) error {
	return r.db.WithContext(ctx).Delete(l).Error
}

func (r *LorryRepository) GetByLorryID(ctx context.Context, orgID, lorryID string) (*lorryDomain.Lorry, error) {
	var out lorryDomain.Lorry
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND lorry_id = ?", orgID, lorryID).
		First(&out)
	return &out, res.Error
}

// GetByLorryIDForUpdate takes a row lock; only meaningful inside a
// transaction.
func (r *LorryRepository) GetByLorryIDForUpdate(ctx context.Context, orgID, lorryID string) (*lorryDomain.Lorry, error) {
	var out lorryDomain.Lorry
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ? AND lorry_id = ?", orgID, lorryID).
		First(&out)
	return &out, res.Error
}

func (r *LorryRepository) GetByPlate(ctx context.Context, orgID, plateNumber string) (*lorryDomain.Lorry, error) {
	var out lorryDomain.Lorry
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND plate_number = ?", orgID, plateNumber).
		First(&out)
	return &out, res.Error
}

func (r *LorryRepository) List(ctx context.Context, orgID string) ([]lorryDomain.Lorry, error) {
	var out []lorryDomain.Lorry
	res := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
