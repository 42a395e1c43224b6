// Package timetable is the read-side projection of a day's
// reservations and class blocks onto a room-by-hour grid, plus the
// 10-minute detail bar and the range-selection helper that back the
// booking UI.  Everything here is a pure transform over data the caller
// already fetched; the package has no write authority and touches no
// storage.
package timetable

import (
	"fmt"

	"github.com/iliyamo/practice-room-reservation/internal/model"
	"github.com/iliyamo/practice-room-reservation/internal/timeslot"
)

// DefaultHours is the bookable hour range shown on the timetable,
// 09:00 through the hour starting at 21:00.
var DefaultHours = []int{9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}

// DefaultRooms lists the practice rooms in display order.
var DefaultRooms = []string{"1", "2", "3", "4", "5"}

// Cell is one (room, hour) entry of the grid.  An hour cell can carry
// several reservations when they straddle the hour boundary; Labels
// holds the matching display strings in the same order.
type Cell struct {
	Class        bool                `json:"class"`
	Reservations []model.Reservation `json:"reservations,omitempty"`
	Labels       []string            `json:"labels,omitempty"`
}

// Grid is the full projection for one date.  Cells is indexed
// [room][hour] following the order of Rooms and Hours.
type Grid struct {
	Date  string   `json:"date"`
	Rooms []string `json:"rooms"`
	Hours []int    `json:"hours"`
	Cells [][]Cell `json:"cells"`
}

// Project maps a flat list of reservations and date-resolved class
// blocks onto the grid.  A reservation is attributed to hour h exactly
// when its half-open interval overlaps [h*60,(h+1)*60); the same rule
// marks class cells, so a 09:30-10:30 class darkens both the 9 and 10
// rows.
func Project(date string, reservations []model.Reservation, blocks []model.ClassBlock, hours []int, rooms []string) Grid {
	g := Grid{Date: date, Rooms: rooms, Hours: hours, Cells: make([][]Cell, len(rooms))}
	for ri, room := range rooms {
		g.Cells[ri] = make([]Cell, len(hours))
		for hi, hour := range hours {
			cell := &g.Cells[ri][hi]
			hourStart := hour * 60
			hourEnd := hourStart + 60

			for _, b := range blocks {
				if b.Room != room {
					continue
				}
				bs, err := timeslot.Parse(b.Start)
				if err != nil {
					continue
				}
				be, err := timeslot.Parse(b.End)
				if err != nil {
					continue
				}
				if timeslot.Overlaps(bs, be, hourStart, hourEnd) {
					cell.Class = true
					break
				}
			}

			for _, r := range reservations {
				if r.Room != room {
					continue
				}
				rs, err := timeslot.Parse(r.Start)
				if err != nil {
					continue
				}
				re, err := timeslot.Parse(r.End)
				if err != nil {
					continue
				}
				if timeslot.Overlaps(rs, re, hourStart, hourEnd) {
					cell.Reservations = append(cell.Reservations, r)
					cell.Labels = append(cell.Labels, fmt.Sprintf("%s~%s %s", r.Start, r.End, r.Student))
				}
			}
		}
	}
	return g
}

// SubSlot is one 10-minute slice of a selected (room, hour) pair.
type SubSlot struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Reserved bool   `json:"reserved"`
}

// DetailBar computes the six 10-minute sub-slots of the given hour for
// one room.  A sub-slot is reserved when any reservation for that room
// overlaps it, using the same half-open rule as the hour grid.
func DetailBar(room string, hour int, reservations []model.Reservation) [6]SubSlot {
	var out [6]SubSlot
	base := hour * 60
	for i := 0; i < 6; i++ {
		slotStart := base + i*10
		slotEnd := slotStart + 10
		out[i] = SubSlot{Start: timeslot.Format(slotStart), End: timeslot.Format(slotEnd)}
		for _, r := range reservations {
			if r.Room != room {
				continue
			}
			rs, err := timeslot.Parse(r.Start)
			if err != nil {
				continue
			}
			re, err := timeslot.Parse(r.End)
			if err != nil {
				continue
			}
			if timeslot.Overlaps(rs, re, slotStart, slotEnd) {
				out[i].Reserved = true
				break
			}
		}
	}
	return out
}

// DefaultRange is the initial time selection when a free hour cell is
// clicked: the full hour.
func DefaultRange(hour int) (start, end string) {
	return timeslot.Format(hour * 60), timeslot.Format((hour + 1) * 60)
}

// Selection tracks which contiguous run of the six sub-slots is
// selected.  It is a small value type; Click returns the next state
// rather than mutating, which keeps the transition table trivially
// testable.  The empty selection is the zero value of None().
type Selection struct {
	start int // inclusive index 0..5
	end   int // exclusive index 1..6
	some  bool
}

// None returns the empty selection.
func None() Selection { return Selection{} }

// Range reports the selected [start,end) sub-slot indexes; ok is false
// for the empty selection.
func (s Selection) Range() (start, end int, ok bool) {
	return s.start, s.end, s.some
}

// Click applies one click on sub-slot i and returns the new selection:
//
//   - empty selection           -> select just slot i
//   - re-click the sole slot    -> clear
//   - i before the start        -> extend the start down to i
//   - i at or past the end      -> extend the end up through i
//   - i inside a wider range    -> collapse to just slot i
func (s Selection) Click(i int) Selection {
	if i < 0 || i > 5 {
		return s
	}
	switch {
	case !s.some:
		return Selection{start: i, end: i + 1, some: true}
	case i == s.start && s.end == s.start+1:
		return None()
	case i < s.start:
		return Selection{start: i, end: s.end, some: true}
	case i >= s.end:
		return Selection{start: s.start, end: i + 1, some: true}
	default:
		return Selection{start: i, end: i + 1, some: true}
	}
}

// Times converts the selection into concrete "HH:MM" bounds within the
// given hour, for pre-filling the booking form.
func (s Selection) Times(hour int) (start, end string, ok bool) {
	if !s.some {
		return "", "", false
	}
	base := hour * 60
	return timeslot.Format(base + s.start*10), timeslot.Format(base + s.end*10), true
}
