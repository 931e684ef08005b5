package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"tourbook/internal/domain"
	"tourbook/internal/policy"
	"tourbook/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	bookings   BookingRepository
	tours      TourGate
	notifs     NotificationSender
	minAdvance time.Duration
}

func NewService(bookings BookingRepository, tours TourGate, notifs NotificationSender, minAdvance time.Duration) *Service {
	return &Service{
		bookings:   bookings,
		tours:      tours,
		notifs:     notifs,
		minAdvance: minAdvance,
	}
}

// CreateBooking admits a booking against the tour's remaining capacity for
// the requested date. Input-shape checks fail fast here; the capacity check,
// duplicate guard and insert run atomically in the repository under the tour
// row lock, so the admission decision is always made on fresh data.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if req.ParticipantsCount < 1 {
		return nil, ErrValidation
	}

	if req.Date.Before(time.Now().Add(s.minAdvance)) {
		return nil, ErrInvalidState
	}

	b := &domain.Booking{
		Reference:         uuid.New().String(),
		TourID:            req.TourID,
		UserID:            &userID,
		ParticipantsCount: req.ParticipantsCount,
		Date:              req.Date.UTC(),
		Status:            domain.BookingPending,
	}

	if err := s.bookings.CreateAdmitted(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrTourInactive):
			return nil, ErrInvalidState
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, ErrCapacityExceeded
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicate
		default:
			return nil, err
		}
	}

	logBookingAction(b.ID, userID, "create", string(b.Status))

	if s.notifs != nil {
		if ownerID, err := s.bookings.GetTourOwner(ctx, b.ID); err == nil && ownerID != nil {
			s.notifs.NotifyBookingCreated(*ownerID, b)
		}
	}

	return b, nil
}

// UpdateStatus drives the booking state machine. The update itself is guarded
// on the previous status so a concurrent transition cannot be overwritten.
func (s *Service) UpdateStatus(ctx context.Context, actor policy.Actor, bookingID int64, newStatus string) (*domain.Booking, error) {
	next := domain.BookingStatus(newStatus)
	switch next {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingPaid, domain.BookingCancelled:
	default:
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !b.Status.CanTransition(next) {
		return nil, ErrInvalidState
	}

	ownerID, err := s.bookings.GetTourOwner(ctx, bookingID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if !policy.CanTransitionBooking(actor, b, ownerID, next) {
		return nil, ErrForbidden
	}

	if err := s.bookings.UpdateStatusGuard(ctx, bookingID, b.Status, next); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrInvalidState
		}
		return nil, err
	}

	logBookingAction(b.ID, actor.ID, "update_status", string(b.Status)+" -> "+string(next))

	prev := b.Status
	b.Status = next

	if s.notifs != nil && next == domain.BookingCancelled && prev != domain.BookingCancelled && ownerID != nil {
		s.notifs.NotifyBookingCancelled(*ownerID, b)
	}

	return b, nil
}

func (s *Service) GetByID(ctx context.Context, actor policy.Actor, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ownerID, err := s.bookings.GetTourOwner(ctx, bookingID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if !policy.IsOwnerOrAdmin(b.UserID, actor) && !policy.IsOwnerOrAdmin(ownerID, actor) {
		return nil, ErrForbidden
	}
	return b, nil
}

// List returns the bookings visible to the actor: clients see their own,
// companies see bookings against their tours, admins see everything.
func (s *Service) List(ctx context.Context, actor policy.Actor, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return s.bookings.ListAll(ctx, limit, offset)
	case domain.RoleCompany:
		return s.bookings.ListByCompanyOwner(ctx, actor.ID, limit, offset)
	default:
		return s.bookings.ListByUser(ctx, actor.ID, limit, offset)
	}
}

// Delete removes a booking outright. Admin only; everyone else cancels.
func (s *Service) Delete(ctx context.Context, actor policy.Actor, bookingID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	logBookingAction(bookingID, actor.ID, "delete", "")
	return nil
}

// Availability reports the remaining capacity for (tour, date).
func (s *Service) Availability(ctx context.Context, tourID int64, date time.Time) (int, error) {
	tour, err := s.tours.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	taken, err := s.bookings.SumParticipants(ctx, tourID, date.UTC())
	if err != nil {
		return 0, err
	}

	available := tour.Capacity - taken
	if available < 0 {
		available = 0
	}
	return available, nil
}

func logBookingAction(bookingID, actorID int64, action, detail string) {
	log.Printf("booking_action booking_id=%d user_id=%d action=%s detail=%q", bookingID, actorID, action, detail)
}
