package booking

import (
	"context"
	"time"

	"tourbook/internal/domain"
)

// BookingRepository is the storage surface the admission controller needs.
// CreateAdmitted must run the capacity check and insert atomically under an
// exclusive tour-row lock; see repository.BookingRepository.
type BookingRepository interface {
	CreateAdmitted(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetTourOwner(ctx context.Context, bookingID int64) (*int64, error)
	UpdateStatusGuard(ctx context.Context, id int64, from, to domain.BookingStatus) error
	SumParticipants(ctx context.Context, tourID int64, date time.Time) (int, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	ListByCompanyOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// TourGate is the slice of tour storage the booking module reads.
type TourGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}

// NotificationSender pushes booking events to the owning company. Calls are
// fire-and-forget and happen outside the admission transaction.
type NotificationSender interface {
	NotifyBookingCreated(ownerUserID int64, b *domain.Booking)
	NotifyBookingCancelled(ownerUserID int64, b *domain.Booking)
}
