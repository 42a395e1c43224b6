package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/practice-room-reservation/internal/booking"
	"github.com/iliyamo/practice-room-reservation/internal/middleware"
	"github.com/iliyamo/practice-room-reservation/internal/model"
	"github.com/iliyamo/practice-room-reservation/internal/queue"
	"github.com/iliyamo/practice-room-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/practice-room-reservation/internal/service"
)

// ReservationHandler serves the student-facing reservation endpoints:
// listing a date, booking a slot and self-cancelling with a manage
// code.  Writes invalidate the date's cached reads and emit a
// lifecycle event; both are best-effort side channels that never fail
// the request.
type ReservationHandler struct {
	Repo   *repository.ReservationRepo
	Engine *booking.Engine
	Cache  *middleware.Cache
}

// NewReservationHandler constructs a ReservationHandler.  Repo and
// Engine must be non-nil; Cache may be nil when Redis is not in play.
func NewReservationHandler(repo *repository.ReservationRepo, engine *booking.Engine, cache *middleware.Cache) *ReservationHandler {
	if repo == nil || engine == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Repo: repo, Engine: engine, Cache: cache}
}

// List handles GET /api/reservations?date=YYYY-MM-DD.  It returns the
// date's reservations without manage codes, an empty array when the day
// is clear.
func (h *ReservationHandler) List(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date parameter is required (e.g. ?date=2025-12-05)"})
	}
	reservations, err := h.Repo.ListByDate(c.Request().Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// roomField accepts the room as either a JSON string or a JSON number,
// normalizing to the decimal string the store compares on.  Clients
// send both shapes; rooms are numbered but not arithmetic.
type roomField string

func (r *roomField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = roomField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = roomField(n.String())
	return nil
}

// Create handles POST /api/reservations.  On success the response is
// the stored reservation including its manage code; this is the one
// time the code leaves the server for a non-admin caller.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body struct {
		Room    roomField `json:"room"`
		Date    string    `json:"date"`
		Start   string    `json:"start"`
		End     string    `json:"end"`
		Student string    `json:"student"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res, err := h.Engine.RequestBooking(c.Request().Context(), string(body.Room), body.Date, body.Start, body.End, body.Student)
	if err != nil {
		return writeError(c, err)
	}

	afterWrite(h.Cache, res, "booked", false)
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /api/reservations/:id with a {manageCode} body.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		ManageCode string `json:"manageCode"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	// Snapshot the row first; after deletion there is nothing left to
	// tell us which date to invalidate or what to put in the event.
	snapshot, _ := h.Repo.GetByID(c.Request().Context(), id)

	if err := h.Engine.Cancel(c.Request().Context(), id, body.ManageCode); err != nil {
		return writeError(c, err)
	}

	afterWrite(h.Cache, snapshot, "cancelled", false)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// afterWrite runs the write side effects shared by the student and
// admin surfaces: cache invalidation for the touched date and a
// fire-and-forget lifecycle event.
func afterWrite(cache *middleware.Cache, res model.Reservation, action string, admin bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	cache.InvalidateDate(ctx, res.Date)
	go func() {
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(ctx, queue.ReservationEvent{
			Action:        action,
			ReservationID: res.ID,
			Room:          res.Room,
			Date:          res.Date,
			Start:         res.Start,
			End:           res.End,
			Student:       res.Student,
			Admin:         admin,
		})
	}()
}
