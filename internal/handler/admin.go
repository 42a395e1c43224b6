package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/booking"
	"github.com/iliyamo/practice-room-reservation/internal/config"
	"github.com/iliyamo/practice-room-reservation/internal/middleware"
	"github.com/iliyamo/practice-room-reservation/internal/model"
	"github.com/iliyamo/practice-room-reservation/internal/repository"
	"github.com/iliyamo/practice-room-reservation/internal/schedule"
	"github.com/iliyamo/practice-room-reservation/internal/timeslot"
	"github.com/iliyamo/practice-room-reservation/internal/utils"
)

// AdminHandler groups the administrator surface: session login, the
// full reservation listing (manage codes included), forced
// cancellation, and wholesale replacement of the weekly class schedule.
type AdminHandler struct {
	Cfg    config.Config
	Repo   *repository.ReservationRepo
	Engine *booking.Engine
	Sched  *schedule.Schedule
	Cache  *middleware.Cache
}

// NewAdminHandler constructs an AdminHandler.  Cache may be nil.
func NewAdminHandler(cfg config.Config, repo *repository.ReservationRepo, engine *booking.Engine, sched *schedule.Schedule, cache *middleware.Cache) *AdminHandler {
	if repo == nil || engine == nil || sched == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Repo: repo, Engine: engine, Sched: sched, Cache: cache}
}

// Login handles POST /api/admin/login.  It exchanges the shared admin
// code for a short-lived HS256 bearer token so the admin page does not
// have to hold the code in memory for every request.
func (h *AdminHandler) Login(c echo.Context) error {
	var body struct {
		AdminCode string `json:"adminCode"`
	}
	if err := c.Bind(&body); err != nil || body.AdminCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "adminCode is required"})
	}
	if !utils.VerifySecret(h.Cfg.AdminCodeHash, body.AdminCode) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "admin code does not match"})
	}

	exp := time.Now().UTC().Add(time.Duration(h.Cfg.AdminTokenTTLMin) * time.Minute)
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(h.Cfg.JWTSecret))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": signed, "expires_at": exp.Format(time.RFC3339)})
}

// ListReservations handles GET /api/admin/reservations?date=...  The
// rows include manage codes so the administrator can recover them for
// students; the route sits behind the AdminAuth middleware.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date parameter is required"})
	}
	reservations, err := h.Repo.ListByDateWithCodes(c.Request().Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// ForceCancel handles DELETE /api/admin/reservations/:id with an
// {adminCode} body.  The admin code replaces the per-reservation manage
// code entirely; once it checks out the deletion is unconditional.
func (h *AdminHandler) ForceCancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		AdminCode string `json:"adminCode"`
	}
	if err := c.Bind(&body); err != nil || body.AdminCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "adminCode is required"})
	}
	if !utils.VerifySecret(h.Cfg.AdminCodeHash, body.AdminCode) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "admin code does not match"})
	}

	snapshot, _ := h.Repo.GetByID(c.Request().Context(), id)

	if err := h.Engine.AdminCancel(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	afterWrite(h.Cache, snapshot, "cancelled", true)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// GetClassSchedule handles GET /api/admin/class-schedule, returning the
// raw weekly template list (not resolved to a date).  Behind AdminAuth.
func (h *AdminHandler) GetClassSchedule(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"lessons": h.Sched.All()})
}

// ReplaceClassSchedule handles POST /api/admin/class-schedule with an
// {adminCode, lessons} body.  The table is swapped wholesale; there is
// no partial update.  Rows must be valid or the whole request is
// rejected so the administrator never ends up with a half-usable table.
func (h *AdminHandler) ReplaceClassSchedule(c echo.Context) error {
	var body struct {
		AdminCode string             `json:"adminCode"`
		Lessons   []model.ClassBlock `json:"lessons"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.AdminCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "adminCode is required"})
	}
	if !utils.VerifySecret(h.Cfg.AdminCodeHash, body.AdminCode) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "admin code does not match"})
	}

	for i, b := range body.Lessons {
		if b.Weekday < 1 || b.Weekday > 7 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "lesson " + strconv.Itoa(i) + ": weekday must be 1..7"})
		}
		if b.Room == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "lesson " + strconv.Itoa(i) + ": room is required"})
		}
		start, err := timeslot.Parse(b.Start)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "lesson " + strconv.Itoa(i) + ": start must be HH:MM"})
		}
		end, err := timeslot.Parse(b.End)
		if err != nil || end <= start {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "lesson " + strconv.Itoa(i) + ": end must be HH:MM after start"})
		}
	}

	h.Sched.ReplaceAll(body.Lessons)
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "count": len(body.Lessons)})
}
