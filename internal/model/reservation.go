package model

import "time"

// DateFormat is the calendar-date layout for reservation and loan dates.
// These fields carry no time component.
const DateFormat = "2006-01-02"

// Today returns the current calendar date.
func Today() string {
	return time.Now().Format(DateFormat)
}

// Reservation is a user's claim on a book pending fulfillment. Book is a
// snapshot taken when the reservation was created and intentionally does not
// follow later changes to the catalog entry.
type Reservation struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	BookID          string `json:"book_id"`
	Book            Book   `json:"book"`
	ReservationDate string `json:"reservation_date"`
	Status          string `json:"status"`
	DueDate         string `json:"due_date,omitempty"`
}

// Reservation statuses. Only pending is reachable through Reserve; confirmed
// and completed come from seed data, and cancellation deletes the record
// outright rather than marking it cancelled.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// Active reports whether the reservation still counts against the user
// (not cancelled and not completed).
func (r Reservation) Active() bool {
	return r.Status != ReservationCancelled && r.Status != ReservationCompleted
}
