package delivery

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusProcessed  Status = "PROCESSED"
)

// Open reports whether the delivery still counts as the farmer's active
// contribution on its lorry; at most one open delivery may exist per
// (lorry, farmer).
func (s Status) Open() bool { return s == StatusPending || s == StatusInProgress }

// WeightList stores the ordered per-bag weights as a JSON column.
type WeightList []decimal.Decimal

func (w WeightList) Value() (driver.Value, error) {
	b, err := json.Marshal(w)
	return string(b), err
}

func (w *WeightList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*w = nil
		return nil
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return fmt.Errorf("weights: cannot scan %T", src)
	}
}

type Delivery struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"-"`
	DeliveryID     string `gorm:"size:32;uniqueIndex:ux_deliveries_delivery_id_active" json:"delivery_id"`
	OrganizationID string `gorm:"size:32;index:idx_deliveries_org" json:"organization_id"`
	LorryID        string `gorm:"size:32;index:idx_deliveries_lorry" json:"lorry_id"`
	FarmerID       string `gorm:"size:32;index:idx_deliveries_farmer" json:"farmer_id"`
	FieldManagerID string `gorm:"size:32" json:"field_manager_id"`

	// Raw field-collected input.
	BagsCount         int             `gorm:"not null" json:"bags_count"`
	IndividualWeights WeightList      `gorm:"type:json" json:"individual_weights"`
	MoistureContent   decimal.Decimal `gorm:"type:decimal(5,2)" json:"moisture_content"`
	Notes             string          `gorm:"type:text" json:"notes"`

	// Derived weights, recomputed on every mutation, never user-set.
	GrossWeight       decimal.Decimal `gorm:"type:decimal(12,2)" json:"gross_weight"`
	StandardDeduction decimal.Decimal `gorm:"type:decimal(12,2)" json:"standard_deduction"`
	QualityDeduction  decimal.Decimal `gorm:"type:decimal(12,2)" json:"quality_deduction"`
	QualityGrade      string          `gorm:"size:8" json:"quality_grade"`
	NetWeight         decimal.Decimal `gorm:"type:decimal(12,2)" json:"net_weight"`

	// Financials, set once pricing begins. AdvanceAmount is the balance
	// snapshot consumed at pricing time, not a live link.
	PricePerKg      decimal.Decimal `gorm:"type:decimal(12,2)" json:"price_per_kg"`
	TotalValue      decimal.Decimal `gorm:"type:decimal(14,2)" json:"total_value"`
	AdvanceAmount   decimal.Decimal `gorm:"type:decimal(14,2)" json:"advance_amount"`
	InterestCharges decimal.Decimal `gorm:"type:decimal(14,2)" json:"interest_charges"`
	FinalAmount     decimal.Decimal `gorm:"type:decimal(14,2)" json:"final_amount"`

	Status      Status     `gorm:"type:enum('PENDING','IN_PROGRESS','COMPLETED','PROCESSED');default:'PENDING'" json:"status"`
	DeliveredAt time.Time  `gorm:"autoCreateTime" json:"delivered_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Delivery) TableName() string { return "deliveries" }

// Priced reports whether the admin has set a positive price. This is
// the per-delivery half of the lorry's all-priced join condition.
func (d *Delivery) Priced() bool { return d.PricePerKg.IsPositive() }
