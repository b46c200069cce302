package mysql

import (
	"context"

	advanceDomain "farmtally-backend/internal/domain/advance"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdvanceRepository struct{ db *gorm.DB }

func NewAdvanceRepository(db *gorm.DB) *AdvanceRepository { return &AdvanceRepository{db: db} }

func (r *AdvanceRepository) Create(ctx context.Context, a *advanceDomain.AdvancePayment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdvanceRepository) Save(ctx context.Context, a *advanceDomain.AdvancePayment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AdvanceRepository) GetByAdvanceID(ctx context.Context, orgID, advanceID string) (*advanceDomain.AdvancePayment, error) {
	var out advanceDomain.AdvancePayment
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND advance_id = ?", orgID, advanceID).
		First(&out)
	return &out, res.Error
}

func (r *AdvanceRepository) ListByFarmer(ctx context.Context, orgID, farmerID string) ([]advanceDomain.AdvancePayment, error) {
	var out []advanceDomain.AdvancePayment
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND farmer_id = ?", orgID, farmerID).
		Order("paid_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *AdvanceRepository) SumCompletedByFarmer(ctx context.Context, orgID, farmerID string) (decimal.Decimal, error) {
	row := r.db.WithContext(ctx).
		Model(&advanceDomain.AdvancePayment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("organization_id = ? AND farmer_id = ? AND status = ?",
			orgID, farmerID, advanceDomain.StatusCompleted).
		Row()
	var total decimal.Decimal
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
