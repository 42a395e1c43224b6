package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/config"
	"github.com/iliyamo/practice-room-reservation/internal/database"
	"github.com/iliyamo/practice-room-reservation/internal/handler"
	"github.com/iliyamo/practice-room-reservation/internal/middleware"
)

// Register wires every route of the application onto the provided Echo
// instance.  Student endpoints live under /api, administrator endpoints
// under /api/admin; only the admin read routes carry the AdminAuth
// middleware, mutations authenticate through their request body per the
// public API contract.
func Register(
	e *echo.Echo,
	cfg config.Config,
	db *database.DB,
	res *handler.ReservationHandler,
	blocks *handler.BlocksHandler,
	tt *handler.TimetableHandler,
	admin *handler.AdminHandler,
	cache *middleware.Cache,
) {
	// Health check for load balancers and monitoring; always 200.
	e.GET("/healthz", handler.Health(db))

	api := e.Group("/api")
	api.Use(cache.Middleware())

	// Student-facing reservation surface.
	api.GET("/reservations", res.List)
	api.POST("/reservations", res.Create)
	api.DELETE("/reservations/:id", res.Delete)

	// Resolved class blocks and the projected timetable for a date.
	api.GET("/blocks", blocks.List)
	api.GET("/timetable", tt.Get)

	// Administrator surface.  Login is open; reads require a bearer
	// token or X-Admin-Code header; mutations carry the code in their
	// body and are verified by the handlers themselves.
	api.POST("/admin/login", admin.Login)
	api.DELETE("/admin/reservations/:id", admin.ForceCancel)
	api.POST("/admin/class-schedule", admin.ReplaceClassSchedule)

	guarded := api.Group("/admin")
	guarded.Use(middleware.AdminAuth(cfg.JWTSecret, cfg.AdminCodeHash))
	guarded.GET("/reservations", admin.ListReservations)
	guarded.GET("/class-schedule", admin.GetClassSchedule)
}
