package mysql

import (
	"context"

	farmerDomain "farmtally-backend/internal/domain/farmer"

	"gorm.io/gorm"
)

type FarmerRepository struct{ db *gorm.DB }

func NewFarmerRepository(db *gorm.DB) *FarmerRepository { return &FarmerRepository{db: db} }

func (r *FarmerRepository) Create(ctx context.Context, f *farmerDomain.Farmer) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FarmerRepository) Save(ctx context.Context, f *farmerDomain.Farmer) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FarmerRepository) GetByFarmerID(ctx context.Context, orgID, farmerID string) (*farmerDomain.Farmer, error) {
	var out farmerDomain.Farmer
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND farmer_id = ?", orgID, farmerID).
		First(&out)
	return &out, res.Error
}

func (r *FarmerRepository) List(ctx context.Context, orgID string) ([]farmerDomain.Farmer, error) {
	var out []farmerDomain.Farmer
	res := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&out)
	return out, res.Error
}
