package farmer

import (
	"time"

	"gorm.io/gorm"
)

type Farmer struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	FarmerID       string         `gorm:"size:32;uniqueIndex:ux_farmers_farmer_id_active" json:"farmer_id"`
	OrganizationID string         `gorm:"size:32;index:idx_farmers_org" json:"organization_id"`
	Name           string         `gorm:"size:120" json:"name"`
	Phone          string         `gorm:"size:20" json:"phone"`
	Village        string         `gorm:"size:120" json:"village"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Farmer) TableName() string { return "farmers" }
