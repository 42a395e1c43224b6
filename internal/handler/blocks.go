package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/model"
	"github.com/iliyamo/practice-room-reservation/internal/schedule"
)

// BlocksHandler exposes the weekly class schedule resolved for a
// concrete date, so the timetable can darken class cells.
type BlocksHandler struct {
	Sched *schedule.Schedule
}

// NewBlocksHandler constructs a BlocksHandler.
func NewBlocksHandler(sched *schedule.Schedule) *BlocksHandler {
	if sched == nil {
		panic("nil schedule passed to NewBlocksHandler")
	}
	return &BlocksHandler{Sched: sched}
}

// List handles GET /api/blocks?date=YYYY-MM-DD.  The response is the
// date's resolved class blocks (room, start, end); an empty array means
// no classes that day.
func (h *BlocksHandler) List(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date parameter is required"})
	}
	blocks := h.Sched.ResolveForDate(date)
	if blocks == nil {
		blocks = []model.ClassBlock{}
	}
	return c.JSON(http.StatusOK, blocks)
}
