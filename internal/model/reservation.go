package model

// Reservation records a student's booking of a practice room for a
// contiguous time range on a single date.  Times are naive wall-clock
// strings; dates carry no timezone.  The manage code is handed to the
// student exactly once at creation time and is required to self-cancel.
//
// Fields:
//  ID         – primary key identifier, assigned by the store.
//  Room       – practice room number (small fixed set, "1".."5").
//  Date       – calendar date as "YYYY-MM-DD".
//  Start      – inclusive start time as "HH:MM" (10-minute granularity).
//  End        – exclusive end time as "HH:MM"; always later than Start.
//  Student    – display name of the student who booked.
//  ManageCode – per-reservation cancellation secret ("1000".."9999").
//               Omitted from list responses; only the creation response
//               and the admin listing include it.
type Reservation struct {
	ID         int64  `json:"id"`                    // reservations.id
	Room       string `json:"room"`                  // reservations.room
	Date       string `json:"date"`                  // reservations.date
	Start      string `json:"start"`                 // reservations.start
	End        string `json:"end"`                   // reservations."end"
	Student    string `json:"student"`               // reservations.student
	ManageCode string `json:"manage_code,omitempty"` // reservations.manage_code (nullable)
}

// ClassBlock is one recurring entry of the weekly class schedule.  A
// block marks a room as unavailable for student booking during the
// given interval on every date whose ISO weekday matches Weekday.
// Blocks are immutable templates; resolving them against a concrete
// date happens in the schedule package.
//
// Fields:
//  Weekday – ISO weekday, 1=Monday .. 7=Sunday.
//  Room    – practice room number, same domain as Reservation.Room.
//  Start   – inclusive "HH:MM" start of the class.
//  End     – exclusive "HH:MM" end of the class; later than Start.
type ClassBlock struct {
	Weekday int    `json:"weekday"` // 1=Mon .. 7=Sun
	Room    string `json:"room"`
	Start   string `json:"start"`
	End     string `json:"end"`
}
