package advance

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	// StatusCompleted advances count toward the farmer's outstanding
	// balance; StatusReversed ones are administrative corrections and
	// are excluded from every aggregation.
	StatusCompleted Status = "COMPLETED"
	StatusReversed  Status = "REVERSED"
)

type AdvancePayment struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	AdvanceID      string          `gorm:"size:32;uniqueIndex:ux_advances_advance_id_active" json:"advance_id"`
	OrganizationID string          `gorm:"size:32;index:idx_advances_org_farmer,priority:1" json:"organization_id"`
	FarmerID       string          `gorm:"size:32;index:idx_advances_org_farmer,priority:2" json:"farmer_id"`
	ProcessedByID  string          `gorm:"size:32" json:"processed_by_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2)" json:"amount"`
	Status         Status          `gorm:"type:enum('COMPLETED','REVERSED');default:'COMPLETED'" json:"status"`
	PaidAt         time.Time       `gorm:"type:date" json:"paid_at"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (AdvancePayment) TableName() string { return "advance_payments" }
