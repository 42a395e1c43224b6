// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published when a reservation is created or
// cancelled.  It carries enough information for downstream consumers to
// log or run analytics without querying the primary database.  The
// manage code is deliberately absent: events may be consumed outside
// the trust boundary of the booking flow.
type ReservationEvent struct {
	Action        string `json:"action"` // "booked" or "cancelled"
	ReservationID int64  `json:"reservation_id"`
	Room          string `json:"room,omitempty"`
	Date          string `json:"date,omitempty"`
	Start         string `json:"start,omitempty"`
	End           string `json:"end,omitempty"`
	Student       string `json:"student,omitempty"`
	Admin         bool   `json:"admin,omitempty"` // cancelled by the administrator
	OccurredAt    string `json:"occurred_at"`
}
