package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the unauthenticated utility endpoints.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Health handles GET /health. It reports liveness only; dependency
// checks belong to the orchestrator's probes, not this endpoint.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "farmtally",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
