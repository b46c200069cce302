package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"farmtally-backend/internal/domain/actor"
	"farmtally-backend/internal/domain/apperr"
)

// ActorContextKey is where the auth middleware stashes the caller.
const ActorContextKey = "actor"

func actorFrom(c echo.Context) (actor.Actor, bool) {
	a, ok := c.Get(ActorContextKey).(actor.Actor)
	return a, ok
}

// writeError maps the business error taxonomy onto HTTP statuses.
// Unrecognized errors stay opaque 500s; the taxonomy types carry the
// caller-facing detail.
func writeError(c echo.Context, err error) error {
	var (
		ve *apperr.ValidationError
		nf *apperr.NotFoundError
		sc *apperr.StateConflictError
		pe *apperr.PermissionError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Reason}},
		})
	case errors.As(err, &nf):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: nf.Error()})
	case errors.As(err, &sc):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: sc.Error()})
	case errors.As(err, &pe):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: pe.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
