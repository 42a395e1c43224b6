package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/repository"
	"github.com/iliyamo/practice-room-reservation/internal/schedule"
	"github.com/iliyamo/practice-room-reservation/internal/timetable"
)

// TimetableHandler serves the projected room-by-hour grid that every
// presentation surface renders, replacing the per-page grid assembly
// the clients used to duplicate.
type TimetableHandler struct {
	Repo  *repository.ReservationRepo
	Sched *schedule.Schedule
}

// NewTimetableHandler constructs a TimetableHandler.
func NewTimetableHandler(repo *repository.ReservationRepo, sched *schedule.Schedule) *TimetableHandler {
	if repo == nil || sched == nil {
		panic("nil dependency passed to NewTimetableHandler")
	}
	return &TimetableHandler{Repo: repo, Sched: sched}
}

// Get handles GET /api/timetable?date=YYYY-MM-DD.  With room and hour
// query parameters it additionally includes the 10-minute detail bar
// for that cell.
func (h *TimetableHandler) Get(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date parameter is required"})
	}

	reservations, err := h.Repo.ListByDate(c.Request().Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	blocks := h.Sched.ResolveForDate(date)
	grid := timetable.Project(date, reservations, blocks, timetable.DefaultHours, timetable.DefaultRooms)

	room := c.QueryParam("room")
	hourStr := c.QueryParam("hour")
	if room == "" || hourStr == "" {
		return c.JSON(http.StatusOK, echo.Map{"grid": grid})
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hour must be an integer"})
	}
	bar := timetable.DetailBar(room, hour, reservations)
	return c.JSON(http.StatusOK, echo.Map{"grid": grid, "detail": bar})
}
