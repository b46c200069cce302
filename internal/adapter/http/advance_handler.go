package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	uc "farmtally-backend/internal/usecase/advance"
)

type AdvanceHandler struct{ uc *uc.Usecase }

func NewAdvanceHandler(u *uc.Usecase) *AdvanceHandler { return &AdvanceHandler{uc: u} }

type createAdvanceReq struct {
	FarmerID string          `json:"farmer_id" validate:"required,hex32"`
	Amount   decimal.Decimal `json:"amount"`
	PaidAt   time.Time       `json:"paid_at"`
	Notes    string          `json:"notes"`
}

// Create handles POST /advances.
func (h *AdvanceHandler) Create(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req createAdvanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Create(c.Request().Context(), act, uc.CreateInput{
		FarmerID: req.FarmerID,
		Amount:   req.Amount,
		PaidAt:   req.PaidAt,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Reverse handles POST /advances/:advance_id/reverse.
func (h *AdvanceHandler) Reverse(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Reverse(c.Request().Context(), act, c.Param("advance_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListByFarmer handles GET /farmers/:farmer_id/advances.
func (h *AdvanceHandler) ListByFarmer(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	out, err := h.uc.ListByFarmer(c.Request().Context(), act, c.Param("farmer_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Balance handles GET /farmers/:farmer_id/advances/balance.
func (h *AdvanceHandler) Balance(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	total, err := h.uc.Balance(c.Request().Context(), act, c.Param("farmer_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"farmer_id": c.Param("farmer_id"),
		"balance":   total,
	})
}
