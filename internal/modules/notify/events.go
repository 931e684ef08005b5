package notify

import (
	"time"

	"tourbook/internal/domain"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
)

// BookingEvent is the payload pushed to a company owner when one of their
// tours gains or loses a booking.
type BookingEvent struct {
	Type         string    `json:"type"`
	BookingID    int64     `json:"booking_id"`
	Reference    string    `json:"reference"`
	TourID       int64     `json:"tour_id"`
	Date         time.Time `json:"date"`
	Participants int       `json:"participants_count"`
	Status       string    `json:"status"`
	At           time.Time `json:"at"`
}

func newBookingEvent(eventType string, b *domain.Booking) BookingEvent {
	return BookingEvent{
		Type:         eventType,
		BookingID:    b.ID,
		Reference:    b.Reference,
		TourID:       b.TourID,
		Date:         b.Date,
		Participants: b.ParticipantsCount,
		Status:       string(b.Status),
		At:           time.Now().UTC(),
	}
}
