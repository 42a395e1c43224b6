// Package schedule keeps the weekly recurring class table that blocks
// rooms from student booking.  The table is read by every request and
// replaced wholesale, either by the administrator or by the periodic
// source reload, so it is held as an immutable snapshot behind an
// atomic pointer: readers never lock, the single writer swaps.
package schedule

import (
	"sync/atomic"
	"time"

	"github.com/iliyamo/practice-room-reservation/internal/model"
)

// Schedule owns the current weekly class table.
type Schedule struct {
	blocks atomic.Pointer[[]model.ClassBlock]
}

// New returns a Schedule preloaded with the given blocks.  A nil or
// empty slice means "no classes anywhere", which is a valid state.
func New(blocks []model.ClassBlock) *Schedule {
	s := &Schedule{}
	s.ReplaceAll(blocks)
	return s
}

// ReplaceAll swaps the entire table in one step.  There is no merge and
// no partial update; callers that want to edit a single entry must send
// the full new table.  Authorization is the HTTP layer's job.
func (s *Schedule) ReplaceAll(blocks []model.ClassBlock) {
	snapshot := make([]model.ClassBlock, len(blocks))
	copy(snapshot, blocks)
	s.blocks.Store(&snapshot)
}

// All returns a copy of the current template list, in source order.
func (s *Schedule) All() []model.ClassBlock {
	cur := *s.blocks.Load()
	out := make([]model.ClassBlock, len(cur))
	copy(out, cur)
	return out
}

// ResolveForDate returns the blocks that apply to the given calendar
// date ("YYYY-MM-DD"), matching on ISO weekday (Monday=1..Sunday=7).
// An unparseable date resolves to no blocks: the schedule is an
// informational blocking aid and fails open.
func (s *Schedule) ResolveForDate(date string) []model.ClassBlock {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	weekday := isoWeekday(t)

	var out []model.ClassBlock
	for _, b := range *s.blocks.Load() {
		if b.Weekday == weekday {
			out = append(out, b)
		}
	}
	return out
}

// isoWeekday converts Go's Sunday=0 weekday to the 1=Monday..7=Sunday
// convention used by the schedule source.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
