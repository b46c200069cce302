package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	uc "farmtally-backend/internal/usecase/farmer"
)

type FarmerHandler struct{ uc *uc.Usecase }

func NewFarmerHandler(u *uc.Usecase) *FarmerHandler { return &FarmerHandler{uc: u} }

type createFarmerReq struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Village string `json:"village"`
}

// Create handles POST /farmers.
func (h *FarmerHandler) Create(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req createFarmerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Create(c.Request().Context(), act, uc.CreateInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Get handles GET /farmers/:farmer_id.
func (h *FarmerHandler) Get(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Get(c.Request().Context(), act, c.Param("farmer_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List handles GET /farmers.
func (h *FarmerHandler) List(c echo.Context) error {
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

// Deactivate handles POST /farmers/:farmer_id/deactivate.
func (h *FarmerHandler) Deactivate(c echo.Context) error {
	act, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Deactivate(c.Request().Context(), act, c.Param("farmer_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
