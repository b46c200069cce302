package mysql

import (
	"context"
	"time"

	deliveryDomain "farmtally-backend/internal/domain/delivery"

	"gorm.io/gorm"
)

type DeliveryRepository struct{ db *gorm.DB }

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository { return &DeliveryRepository{db: db} }

func (r *DeliveryRepository) Create(ctx context.Context, d *deliveryDomain.Delivery) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DeliveryRepository) Save(ctx context.Context, d *deliveryDomain.Delivery) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DeliveryRepository) Delete(ctx context.Context, d *deliveryDomain.Delivery) error {
	return r.db.WithContext(ctx).Delete(d).Error
}

func (r *DeliveryRepository) GetByDeliveryID(ctx context.Context, orgID, deliveryID string) (*deliveryDomain.Delivery, error) {
	var out deliveryDomain.Delivery
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND delivery_id = ?", orgID, deliveryID).
		First(&out)
	return &out, res.Error
}

func (r *DeliveryRepository) GetOpenByLorryFarmer(ctx context.Context, lorryID, farmerID string) (*deliveryDomain.Delivery, error) {
	var out deliveryDomain.Delivery
	res := r.db.WithContext(ctx).
		Where("lorry_id = ? AND farmer_id = ? AND status IN ?",
			lorryID, farmerID,
			[]deliveryDomain.Status{deliveryDomain.StatusPending, deliveryDomain.StatusInProgress}).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *DeliveryRepository) ListByLorry(ctx context.Context, lorryID string) ([]deliveryDomain.Delivery, error) {
	var out []deliveryDomain.Delivery
	res := r.db.WithContext(ctx).
		Where("lorry_id = ?", lorryID).
		Order("delivered_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DeliveryRepository) CountByLorryAndStatus(ctx context.Context, lorryID string, status deliveryDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&deliveryDomain.Delivery{}).
		Where("lorry_id = ? AND status = ?", lorryID, status).
		Count(&n)
	return n, res.Error
}

func (r *DeliveryRepository) CountOpenByLorry(ctx context.Context, lorryID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&deliveryDomain.Delivery{}).
		Where("lorry_id = ? AND status <> ?", lorryID, deliveryDomain.StatusCompleted).
		Count(&n)
	return n, res.Error
}

// BulkTransition stamps the lifecycle timestamp matching the target
// status alongside the status flip, in one UPDATE.
func (r *DeliveryRepository) BulkTransition(ctx context.Context, lorryID string, from, to deliveryDomain.Status, at time.Time) error {
	updates := map[string]any{"status": to, "updated_at": at}
	switch to {
	case deliveryDomain.StatusInProgress:
		updates["submitted_at"] = at
	case deliveryDomain.StatusProcessed:
		updates["processed_at"] = at
	case deliveryDomain.StatusCompleted:
		updates["completed_at"] = at
	}
	return r.db.WithContext(ctx).
		Model(&deliveryDomain.Delivery{}).
		Where("lorry_id = ? AND status = ?", lorryID, from).
		Updates(updates).Error
}
