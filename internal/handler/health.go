package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/database"
)

// Health returns a handler for GET /healthz.  The endpoint always
// answers 200 and reports store readiness as a diagnostic field, so
// operators can see a stuck startup at a glance.
func Health(db *database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := "ok"
		if !db.Ready() {
			status = "waiting for store"
		}
		return c.JSON(http.StatusOK, echo.Map{"status": status, "store_ready": db.Ready()})
	}
}
