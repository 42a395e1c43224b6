package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/booking"
	"github.com/iliyamo/practice-room-reservation/internal/database"
	"github.com/iliyamo/practice-room-reservation/internal/repository"
)

// writeError maps the booking/repository error taxonomy onto HTTP
// responses.  Validation and conflict rejections are the caller's to
// fix (400), wrong codes are 403, unknown ids 404, a store that has not
// come up yet is retryable (503), and anything else is logged with
// detail and surfaced as a generic 500.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrValidation),
		errors.Is(err, booking.ErrClassConflict),
		errors.Is(err, booking.ErrReservationConflict):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, database.ErrNotReady):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store not ready, retry shortly"})
	default:
		log.Printf("request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
