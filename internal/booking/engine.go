package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/iliyamo/practice-room-reservation/internal/database"
	"github.com/iliyamo/practice-room-reservation/internal/model"
	"github.com/iliyamo/practice-room-reservation/internal/repository"
	"github.com/iliyamo/practice-room-reservation/internal/schedule"
	"github.com/iliyamo/practice-room-reservation/internal/timeslot"
)

// Store is the slice of the reservation store the engine needs.  The
// production implementation is repository.ReservationRepo; tests use an
// in-memory fake.  InsertIfFree must perform its overlap check and the
// insert atomically and return repository.ErrOverlap on conflict.
type Store interface {
	InsertIfFree(ctx context.Context, res *model.Reservation) error
	GetManageCode(ctx context.Context, id int64) (string, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// Engine decides whether a proposed booking is legal and owns the
// cancellation authorization protocol.  It consults the weekly class
// schedule first (a class block wins over an empty slot) and delegates
// the reservation-overlap gate to the store, which runs it atomically
// with the insert.
type Engine struct {
	store Store
	sched *schedule.Schedule
}

// NewEngine constructs an Engine.  Both dependencies must be non-nil.
func NewEngine(store Store, sched *schedule.Schedule) *Engine {
	if store == nil || sched == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{store: store, sched: sched}
}

// RequestBooking validates the request, checks class blocks and
// existing reservations, and persists the new reservation with a fresh
// manage code.  The returned reservation is the only place the manage
// code is ever exposed to the requester.
func (e *Engine) RequestBooking(ctx context.Context, room, date, start, end, student string) (model.Reservation, error) {
	var zero model.Reservation

	if room == "" || date == "" || start == "" || end == "" || student == "" {
		return zero, fmt.Errorf("%w: room, date, start, end and student are all required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return zero, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	startMin, err := timeslot.Parse(start)
	if err != nil {
		return zero, fmt.Errorf("%w: start must be HH:MM", ErrValidation)
	}
	endMin, err := timeslot.Parse(end)
	if err != nil {
		return zero, fmt.Errorf("%w: end must be HH:MM", ErrValidation)
	}
	if endMin <= startMin {
		return zero, fmt.Errorf("%w: end must be later than start", ErrValidation)
	}

	for _, b := range e.sched.ResolveForDate(date) {
		if b.Room != room {
			continue
		}
		bs, err := timeslot.Parse(b.Start)
		if err != nil {
			continue // bad template row; the loader should have dropped it
		}
		be, err := timeslot.Parse(b.End)
		if err != nil {
			continue
		}
		if timeslot.Overlaps(startMin, endMin, bs, be) {
			return zero, ErrClassConflict
		}
	}

	res := model.Reservation{
		Room:       room,
		Date:       date,
		Start:      start,
		End:        end,
		Student:    student,
		ManageCode: newManageCode(),
	}
	if err := e.store.InsertIfFree(ctx, &res); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return zero, ErrReservationConflict
		}
		return zero, storeErr(err)
	}
	return res, nil
}

// Cancel deletes the reservation when the supplied manage code matches
// the stored one.  An empty code is a validation error, an unknown id
// is not found, a mismatch is forbidden.  Once authorized the deletion
// is unconditional.
func (e *Engine) Cancel(ctx context.Context, id int64, code string) error {
	if code == "" {
		return fmt.Errorf("%w: manage code is required", ErrValidation)
	}
	stored, err := e.store.GetManageCode(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if stored == "" || stored != code {
		return ErrForbidden
	}
	existed, err := e.store.DeleteByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !existed {
		return repository.ErrNotFound
	}
	return nil
}

// AdminCancel deletes a reservation without consulting its manage code.
// Verifying the administrator credential is the HTTP layer's job; by
// the time this runs the caller is trusted.
func (e *Engine) AdminCancel(ctx context.Context, id int64) error {
	existed, err := e.store.DeleteByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !existed {
		return repository.ErrNotFound
	}
	return nil
}

// newManageCode draws a fresh 4-digit code in 1000..9999.  The code is
// a display-friendly shared secret, not a security credential; rare
// collisions across reservations are accepted.
func newManageCode() string {
	return strconv.Itoa(1000 + rand.IntN(9000))
}

// storeErr passes recognized sentinel errors through untouched and
// wraps everything else as a storage failure.
func storeErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, database.ErrNotReady) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
