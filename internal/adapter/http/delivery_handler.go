package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	uc "farmtally-backend/internal/usecase/delivery"
)

type DeliveryHandler struct{ uc *uc.Usecase }

func NewDeliveryHandler(u *uc.Usecase) *DeliveryHandler { return &DeliveryHandler{uc: u} }

type addFarmerReq struct {
	FarmerID          string            `json:"farmer_id" validate:"required,hex32"`
	BagsCount         int               `json:"bags_count"`
	IndividualWeights []decimal.Decimal `json:"individual_weights"`
	MoistureContent   decimal.Decimal   `json:"moisture_content"`
	Notes             string            `json:"notes"`
}

// AddFarmer handles POST /lorries/:lorry_id/deliveries.
func (h *DeliveryHandler) AddFarmer(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req addFarmerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.AddFarmerToLorry(c.Request().Context(), act, uc.AddFarmerInput{
		LorryID:           c.Param("lorry_id"),
		FarmerID:          req.FarmerID,
		BagsCount:         req.BagsCount,
		IndividualWeights: req.IndividualWeights,
		MoistureContent:   req.MoistureContent,
		Notes:             req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type updateDeliveryReq struct {
	BagsCount         int               `json:"bags_count"`
	IndividualWeights []decimal.Decimal `json:"individual_weights"`
	MoistureContent   decimal.Decimal   `json:"moisture_content"`
	Notes             string            `json:"notes"`
}

// Update handles PUT /deliveries/:delivery_id.
func (h *DeliveryHandler) Update(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req updateDeliveryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Update(c.Request().Context(), act, uc.UpdateInput{
		DeliveryID:        c.Param("delivery_id"),
		BagsCount:         req.BagsCount,
		IndividualWeights: req.IndividualWeights,
		MoistureContent:   req.MoistureContent,
		Notes:             req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type qualityReq struct {
	QualityDeduction decimal.Decimal `json:"quality_deduction"`
	QualityGrade     string          `json:"quality_grade" validate:"grade"`
}

// SetQuality handles PUT /deliveries/:delivery_id/quality.
func (h *DeliveryHandler) SetQuality(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req qualityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.SetQuality(c.Request().Context(), act, uc.QualityInput{
		DeliveryID:       c.Param("delivery_id"),
		QualityDeduction: req.QualityDeduction,
		QualityGrade:     req.QualityGrade,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type pricingReq struct {
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// SetPricing handles PUT /lorries/:lorry_id/deliveries/:delivery_id/pricing.
func (h *DeliveryHandler) SetPricing(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req pricingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.SetPricing(c.Request().Context(), act, uc.PricingInput{
		LorryID:    c.Param("lorry_id"),
		DeliveryID: c.Param("delivery_id"),
		PricePerKg: req.PricePerKg,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Delete handles DELETE /lorries/:lorry_id/deliveries/:delivery_id.
func (h *DeliveryHandler) Delete(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	err := h.uc.Delete(c.Request().Context(), act, uc.DeleteInput{
		LorryID:    c.Param("lorry_id"),
		DeliveryID: c.Param("delivery_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /deliveries/:delivery_id.
func (h *DeliveryHandler) Get(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Get(c.Request().Context(), act, c.Param("delivery_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListByLorry handles GET /lorries/:lorry_id/deliveries.
func (h *DeliveryHandler) ListByLorry(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	out, err := h.uc.ListByLorry(c.Request().Context(), act, c.Param("lorry_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
