package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM, no DECIMAL) ---

type farmerSQLite struct {
	ID             uint64         `gorm:"primaryKey;column:id"`
	FarmerID       string         `gorm:"size:32;column:farmer_id"`
	OrganizationID string         `gorm:"size:32;column:organization_id"`
	Name           string         `gorm:"column:name"`
	Phone          string         `gorm:"column:phone"`
	Village        string         `gorm:"column:village"`
	IsActive       bool           `gorm:"column:is_active"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (farmerSQLite) TableName() string { return "farmers" }

type lorrySQLite struct {
	ID                uint64         `gorm:"primaryKey;column:id"`
	LorryID           string         `gorm:"size:32;column:lorry_id"`
	OrganizationID    string         `gorm:"size:32;column:organization_id"`
	PlateNumber       string         `gorm:"column:plate_number"`
	CapacityKg        string         `gorm:"column:capacity_kg"`
	Status            string         `gorm:"type:text;column:status"` // ← no enum
	AssignedManagerID string         `gorm:"column:assigned_manager_id"`
	DeliveryCount     int            `gorm:"column:delivery_count"`
	PricedCount       int            `gorm:"column:priced_count"`
	StatusUpdatedAt   time.Time      `gorm:"column:status_updated_at"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (lorrySQLite) TableName() string { return "lorries" }

type deliverySQLite struct {
	ID                uint64         `gorm:"primaryKey;column:id"`
	DeliveryID        string         `gorm:"size:32;column:delivery_id"`
	OrganizationID    string         `gorm:"size:32;column:organization_id"`
	LorryID           string         `gorm:"size:32;column:lorry_id"`
	FarmerID          string         `gorm:"size:32;column:farmer_id"`
	FieldManagerID    string         `gorm:"size:32;column:field_manager_id"`
	BagsCount         int            `gorm:"column:bags_count"`
	IndividualWeights string         `gorm:"type:text;column:individual_weights"`
	MoistureContent   string         `gorm:"column:moisture_content"`
	Notes             string         `gorm:"column:notes"`
	GrossWeight       string         `gorm:"column:gross_weight"`
	StandardDeduction string         `gorm:"column:standard_deduction"`
	QualityDeduction  string         `gorm:"column:quality_deduction"`
	QualityGrade      string         `gorm:"column:quality_grade"`
	NetWeight         string         `gorm:"column:net_weight"`
	PricePerKg        string         `gorm:"column:price_per_kg"`
	TotalValue        string         `gorm:"column:total_value"`
	AdvanceAmount     string         `gorm:"column:advance_amount"`
	InterestCharges   string         `gorm:"column:interest_charges"`
	FinalAmount       string         `gorm:"column:final_amount"`
	Status            string         `gorm:"type:text;column:status"` // ← no enum
	DeliveredAt       time.Time      `gorm:"column:delivered_at"`
	SubmittedAt       *time.Time     `gorm:"column:submitted_at"`
	ProcessedAt       *time.Time     `gorm:"column:processed_at"`
	CompletedAt       *time.Time     `gorm:"column:completed_at"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (deliverySQLite) TableName() string { return "deliveries" }

type advanceSQLite struct {
	ID             uint64         `gorm:"primaryKey;column:id"`
	AdvanceID      string         `gorm:"size:32;column:advance_id"`
	OrganizationID string         `gorm:"size:32;column:organization_id"`
	FarmerID       string         `gorm:"size:32;column:farmer_id"`
	ProcessedByID  string         `gorm:"size:32;column:processed_by_id"`
	Amount         float64        `gorm:"column:amount"`
	Status         string         `gorm:"type:text;column:status"` // ← no enum
	PaidAt         time.Time      `gorm:"column:paid_at"`
	Notes          string         `gorm:"column:notes"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (advanceSQLite) TableName() string { return "advance_payments" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(&farmerSQLite{}, &lorrySQLite{}, &deliverySQLite{}, &advanceSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
