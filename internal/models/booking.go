package models

import "time"

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a mentee's reserved session with a mentor. Instants are stored
// UTC; wall-clock interpretation happens against the mentor's timezone.
type Booking struct {
	ID        string        `db:"id" json:"id"`
	MentorID  string        `db:"mentor_id" json:"mentorId"`
	MenteeID  string        `db:"mentee_id" json:"menteeId"`
	StartAt   time.Time     `db:"start_at" json:"startAt"`
	EndAt     time.Time     `db:"end_at" json:"endAt"`
	Status    BookingStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `db:"updated_at" json:"-"`
}

// Overlaps reports whether two bookings share any instant.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// AvailableSlot is one bookable candidate offered to mentees.
type AvailableSlot struct {
	StartAt           time.Time `json:"startAt"`
	EndAt             time.Time `json:"endAt"`
	RemainingCapacity int       `json:"remainingCapacity"`
}
