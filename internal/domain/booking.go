package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
)

// CanTransition reports whether a booking may move from its current status to
// next. Cancelled is terminal: nothing leaves it, not even a re-cancel.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingPaid || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingPaid || next == BookingCancelled
	case BookingPaid:
		return next == BookingCancelled
	default:
		return false
	}
}

type Booking struct {
	ID                int64         `json:"id"`
	Reference         string        `json:"reference"`
	TourID            int64         `json:"tour_id" validate:"required"`
	UserID            *int64        `json:"user_id,omitempty"`
	ParticipantsCount int           `json:"participants_count" validate:"required,gte=1"`
	Date              time.Time     `json:"date" validate:"required"`
	Status            BookingStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	Tour *Tour `json:"tour,omitempty"`
	User *User `json:"user,omitempty"`
}
