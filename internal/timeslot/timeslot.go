// Package timeslot converts between "HH:MM" wall-clock strings and
// minute-of-day integers and provides the single overlap predicate the
// rest of the application uses for conflict checks.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadClock is returned by Parse for anything that is not a
// well-formed "HH:MM" string within a single day.
var ErrBadClock = errors.New("malformed HH:MM time")

// Parse converts "HH:MM" to minutes since midnight (0..1439).
func Parse(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, ErrBadClock
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, ErrBadClock
	}
	min, err := strconv.Atoi(m)
	if err != nil {
		return 0, ErrBadClock
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, ErrBadClock
	}
	return hour*60 + min, nil
}

// Format converts minutes since midnight to a zero-padded "HH:MM"
// string.  The caller is expected to stay within 0..1439; there is no
// day rollover handling.
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) share at least one minute.  Adjacent intervals
// (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsClock is Overlaps for "HH:MM" operands.  Malformed input is
// treated as no overlap; validation belongs to the caller.
func OverlapsClock(aStart, aEnd, bStart, bEnd string) bool {
	as, err := Parse(aStart)
	if err != nil {
		return false
	}
	ae, err := Parse(aEnd)
	if err != nil {
		return false
	}
	bs, err := Parse(bStart)
	if err != nil {
		return false
	}
	be, err := Parse(bEnd)
	if err != nil {
		return false
	}
	return Overlaps(as, ae, bs, be)
}
