package lorry

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAvailable    Status = "AVAILABLE"
	StatusAssigned     Status = "ASSIGNED"
	StatusLoading      Status = "LOADING"
	StatusSubmitted    Status = "SUBMITTED"
	StatusProcessed    Status = "PROCESSED"
	StatusSentToDealer Status = "SENT_TO_DEALER"
)

// transitions is the full legal edge set. Forward edges follow the run
// lifecycle; the three backward edges are unassignment, deletion of the
// last delivery, and demotion when an unpriced delivery lands on an
// already-processed lorry.
var transitions = map[Status][]Status{
	StatusAvailable: {StatusAssigned},
	StatusAssigned:  {StatusAvailable, StatusLoading},
	StatusLoading:   {StatusAssigned, StatusSubmitted},
	StatusSubmitted: {StatusProcessed},
	StatusProcessed: {StatusSentToDealer, StatusSubmitted},
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition exists.
func (s Status) Terminal() bool { return s == StatusSentToDealer }

type Lorry struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	LorryID           string          `gorm:"size:32;uniqueIndex:ux_lorries_lorry_id_active" json:"lorry_id"`
	OrganizationID    string          `gorm:"size:32;uniqueIndex:ux_lorries_org_plate,priority:1;index:idx_lorries_org" json:"organization_id"`
	PlateNumber       string          `gorm:"size:20;uniqueIndex:ux_lorries_org_plate,priority:2" json:"plate_number"`
	CapacityKg        decimal.Decimal `gorm:"type:decimal(12,2)" json:"capacity_kg"`
	Status            Status          `gorm:"type:enum('AVAILABLE','ASSIGNED','LOADING','SUBMITTED','PROCESSED','SENT_TO_DEALER');default:'AVAILABLE'" json:"status"`
	AssignedManagerID string          `gorm:"size:32;index" json:"assigned_manager_id"`

	// Aggregate counters maintained under the lorry row lock, so the
	// "all deliveries priced" decision never rescans children.
	DeliveryCount int `gorm:"not null;default:0" json:"delivery_count"`
	PricedCount   int `gorm:"not null;default:0" json:"priced_count"`

	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lorry) TableName() string { return "lorries" }

// AllPriced is the lorry-wide join condition: every attached delivery
// carries a positive price.
func (l *Lorry) AllPriced() bool {
	return l.DeliveryCount > 0 && l.PricedCount == l.DeliveryCount
}

// SetStatus moves the lorry to a new status, recording when. Callers
// must have checked CanTransition first.
func (l *Lorry) SetStatus(s Status, at time.Time) {
	l.Status = s
	l.StatusUpdatedAt = at
}
