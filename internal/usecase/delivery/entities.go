package delivery

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddFarmerInput struct {
	LorryID           string            `json:"lorry_id"`
	FarmerID          string            `json:"farmer_id"`
	BagsCount         int               `json:"bags_count"`
	IndividualWeights []decimal.Decimal `json:"individual_weights"`
	MoistureContent   decimal.Decimal   `json:"moisture_content"`
	Notes             string            `json:"notes"`
}

type UpdateInput struct {
	DeliveryID        string            `json:"delivery_id"`
	BagsCount         int               `json:"bags_count"`
	IndividualWeights []decimal.Decimal `json:"individual_weights"`
	MoistureContent   decimal.Decimal   `json:"moisture_content"`
	Notes             string            `json:"notes"`
}

type QualityInput struct {
	DeliveryID       string          `json:"delivery_id"`
	QualityDeduction decimal.Decimal `json:"quality_deduction"`
	QualityGrade     string          `json:"quality_grade"`
}

type PricingInput struct {
	LorryID    string          `json:"lorry_id"`
	DeliveryID string          `json:"delivery_id"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

type DeleteInput struct {
	LorryID    string `json:"lorry_id"`
	DeliveryID string `json:"delivery_id"`
}

type DeliveryDTO struct {
	DeliveryID        string            `json:"delivery_id"`
	LorryID           string            `json:"lorry_id"`
	FarmerID          string            `json:"farmer_id"`
	FieldManagerID    string            `json:"field_manager_id"`
	BagsCount         int               `json:"bags_count"`
	IndividualWeights []decimal.Decimal `json:"individual_weights"`
	MoistureContent   decimal.Decimal   `json:"moisture_content"`
	GrossWeight       decimal.Decimal   `json:"gross_weight"`
	StandardDeduction decimal.Decimal   `json:"standard_deduction"`
	QualityDeduction  decimal.Decimal   `json:"quality_deduction"`
	QualityGrade      string            `json:"quality_grade,omitempty"`
	NetWeight         decimal.Decimal   `json:"net_weight"`
	PricePerKg        decimal.Decimal   `json:"price_per_kg"`
	TotalValue        decimal.Decimal   `json:"total_value"`
	AdvanceAmount     decimal.Decimal   `json:"advance_amount"`
	InterestCharges   decimal.Decimal   `json:"interest_charges"`
	FinalAmount       decimal.Decimal   `json:"final_amount"`
	Status            string            `json:"status"`
	Notes             string            `json:"notes,omitempty"`
	LorryStatus       string            `json:"lorry_status,omitempty"`
	DeliveredAt       time.Time         `json:"delivered_at"`
}
