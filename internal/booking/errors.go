// Package booking implements the availability/conflict engine and the
// cancellation authorization protocol.  The error values below form the
// taxonomy handlers map onto HTTP statuses: validation and conflict
// errors are the user's to fix, forbidden means a wrong code, storage
// wraps unexpected persistence failures.
package booking

import "errors"

// ErrValidation covers missing or malformed booking input.  The wrapped
// message says which field; the caller should correct and resubmit.
var ErrValidation = errors.New("invalid input")

// ErrClassConflict rejects a booking whose interval overlaps a resolved
// class block for that room and date, even when no student reservation
// occupies the slot yet.
var ErrClassConflict = errors.New("room is blocked by a class in that time")

// ErrReservationConflict rejects a booking that overlaps an existing
// reservation for the same room and date.
var ErrReservationConflict = errors.New("time already reserved")

// ErrForbidden means the supplied manage code (or admin code, at the
// HTTP layer) did not match.
var ErrForbidden = errors.New("manage code does not match")

// ErrStorage wraps unexpected persistence failures.  The detail is
// logged server-side; clients only see a generic failure.
var ErrStorage = errors.New("storage failure")
