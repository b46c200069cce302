package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	uc "farmtally-backend/internal/usecase/lorry"
)

type LorryHandler struct{ uc *uc.Usecase }

func NewLorryHandler(u *uc.Usecase) *LorryHandler { return &LorryHandler{uc: u} }

type createLorryReq struct {
	PlateNumber string          `json:"plate_number" validate:"required"`
	CapacityKg  decimal.Decimal `json:"capacity_kg"`
}

// Create handles POST /lorries.
func (h *LorryHandler) Create(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req createLorryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Create(c.Request().Context(), act, uc.CreateInput{
		PlateNumber: req.PlateNumber,
		CapacityKg:  req.CapacityKg,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type assignReq struct {
	ManagerID string `json:"manager_id" validate:"required,hex32"`
}

// Assign handles POST /lorries/:lorry_id/assign.
func (h *LorryHandler) Assign(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Assign(c.Request().Context(), act, c.Param("lorry_id"), req.ManagerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Unassign handles POST /lorries/:lorry_id/unassign.
func (h *LorryHandler) Unassign(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Unassign(c.Request().Context(), act, c.Param("lorry_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Submit handles POST /lorries/:lorry_id/submit.
func (h *LorryHandler) Submit(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Submit(c.Request().Context(), act, c.Param("lorry_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// SendToDealer handles POST /lorries/:lorry_id/send-to-dealer.
func (h *LorryHandler) SendToDealer(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.MarkSentToDealer(c.Request().Context(), act, c.Param("lorry_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Delete handles DELETE /lorries/:lorry_id.
func (h *LorryHandler) Delete(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	if err := h.uc.Delete(c.Request().Context(), act, c.Param("lorry_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /lorries/:lorry_id.
func (h *LorryHandler) Get(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Get(c.Request().Context(), act, c.Param("lorry_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List handles GET /lorries.
func (h *LorryHandler) List(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	out, err := h.uc.List(c.Request().Context(), act)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
