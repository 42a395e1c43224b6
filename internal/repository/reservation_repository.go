package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iliyamo/practice-room-reservation/internal/database"
	"github.com/iliyamo/practice-room-reservation/internal/model"
)

// ErrOverlap is returned by InsertIfFree when an existing reservation
// for the same room and date overlaps the requested interval.
var ErrOverlap = errors.New("overlapping reservation exists")

// ReservationRepo provides CRUD operations for reservations.  Rooms and
// dates are stored and compared as text, so callers must normalize both
// before querying (rooms as their decimal string, dates as YYYY-MM-DD).
type ReservationRepo struct {
	db *database.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *database.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ListByDate returns all reservations on the given date ordered by
// (room, start).  The manage code is never part of this listing.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	db, err := r.db.Get()
	if err != nil {
		return nil, err
	}
	const q = `SELECT id, room, date, start, "end", student
	           FROM reservations
	           WHERE date = $1
	           ORDER BY room, start`
	rows, err := db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.Room, &res.Date, &res.Start, &res.End, &res.Student); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ListByDateWithCodes is ListByDate plus the manage code column.  Only
// the admin listing may use it; the code is displayed there so the
// administrator can hand it back to students who lost theirs.
func (r *ReservationRepo) ListByDateWithCodes(ctx context.Context, date string) ([]model.Reservation, error) {
	db, err := r.db.Get()
	if err != nil {
		return nil, err
	}
	const q = `SELECT id, room, date, start, "end", student, COALESCE(manage_code, '')
	           FROM reservations
	           WHERE date = $1
	           ORDER BY room, start`
	rows, err := db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.Room, &res.Date, &res.Start, &res.End, &res.Student, &res.ManageCode); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// InsertIfFree atomically checks for an overlapping reservation on the
// same (room, date) and inserts when the interval is free, populating
// the generated id on res.  The check and the insert share one
// serializable transaction so two concurrent requests for overlapping
// slots cannot both pass the check; serialization failures are retried
// a bounded number of times, and when every attempt collides the slot
// is contended by a competing writer, so the caller sees ErrOverlap.
func (r *ReservationRepo) InsertIfFree(ctx context.Context, res *model.Reservation) error {
	db, err := r.db.Get()
	if err != nil {
		return err
	}
	return retrySerializable(3, func() error {
		return r.insertIfFreeOnce(ctx, db, res)
	})
}

// retrySerializable runs fn up to attempts times, retrying only on
// serialization failures.  Exhausted retries report ErrOverlap: only a
// concurrent writer on the same rows can keep producing SQLSTATE 40001.
func retrySerializable(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return ErrOverlap
}

func (r *ReservationRepo) insertIfFreeOnce(ctx context.Context, db *sql.DB, res *model.Reservation) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Half-open interval comparison on minute-equivalent HH:MM text;
	// both operands are zero-padded so text ordering matches time
	// ordering.
	const conflictQ = `SELECT 1
	                   FROM reservations
	                   WHERE room = $1
	                     AND date = $2
	                     AND NOT ("end" <= $3 OR start >= $4)
	                   LIMIT 1`
	var one int
	err = tx.QueryRowContext(ctx, conflictQ, res.Room, res.Date, res.Start, res.End).Scan(&one)
	switch {
	case err == nil:
		return ErrOverlap
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	const insertQ = `INSERT INTO reservations (room, date, start, "end", student, manage_code)
	                 VALUES ($1, $2, $3, $4, $5, $6)
	                 RETURNING id`
	if err := tx.QueryRowContext(ctx, insertQ,
		res.Room, res.Date, res.Start, res.End, res.Student, res.ManageCode,
	).Scan(&res.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// isSerializationFailure reports whether err is PostgreSQL SQLSTATE
// 40001, raised when serializable transactions collide.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

// GetByID returns a single reservation without its manage code, or
// ErrNotFound.  The cancellation path uses it to learn the date being
// touched (for cache invalidation) and to describe the event.
func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (model.Reservation, error) {
	var res model.Reservation
	db, err := r.db.Get()
	if err != nil {
		return res, err
	}
	const q = `SELECT id, room, date, start, "end", student FROM reservations WHERE id = $1`
	if err := db.QueryRowContext(ctx, q, id).Scan(&res.ID, &res.Room, &res.Date, &res.Start, &res.End, &res.Student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, ErrNotFound
		}
		return res, err
	}
	return res, nil
}

// GetManageCode returns the stored manage code for a reservation, or
// ErrNotFound when the id does not exist.  A reservation inserted
// before the manage_code migration yields an empty code, which can
// never match a supplied one.
func (r *ReservationRepo) GetManageCode(ctx context.Context, id int64) (string, error) {
	db, err := r.db.Get()
	if err != nil {
		return "", err
	}
	const q = `SELECT COALESCE(manage_code, '') FROM reservations WHERE id = $1`
	var code string
	if err := db.QueryRowContext(ctx, q, id).Scan(&code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return code, nil
}

// DeleteByID removes the reservation and reports whether a row existed.
func (r *ReservationRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	db, err := r.db.Get()
	if err != nil {
		return false, err
	}
	result, err := db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
