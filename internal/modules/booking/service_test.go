package booking

import (
	"context"
	"testing"
	"time"

	"tourbook/internal/domain"
	"tourbook/internal/policy"
	"tourbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateAdmitted(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetTourOwner(ctx context.Context, bookingID int64) (*int64, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusGuard(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockBookingRepository) SumParticipants(ctx context.Context, tourID int64, date time.Time) (int, error) {
	args := m.Called(ctx, tourID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCompanyOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTourGate struct {
	mock.Mock
}

func (m *MockTourGate) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ownerUserID int64, b *domain.Booking) {
	m.Called(ownerUserID, b)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ownerUserID int64, b *domain.Booking) {
	m.Called(ownerUserID, b)
}

func newTestService(bookings *MockBookingRepository, tours *MockTourGate, notifs *MockNotificationSender) *Service {
	return NewService(bookings, tours, notifs, 24*time.Hour)
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourGate)
	mockNotifs := new(MockNotificationSender)

	ownerID := int64(7)
	mockBookings.On("CreateAdmitted", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("GetTourOwner", mock.Anything, int64(999)).Return(&ownerID, nil)
	mockNotifs.On("NotifyBookingCreated", ownerID, mock.Anything).Return()

	service := newTestService(mockBookings, mockTours, mockNotifs)

	req := CreateBookingRequest{
		TourID:            5,
		Date:              time.Now().Add(72 * time.Hour),
		ParticipantsCount: 3,
	}

	b, err := service.CreateBooking(context.Background(), 42, req)

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, int64(42), *b.UserID)
	mockNotifs.AssertCalled(t, "NotifyBookingCreated", ownerID, mock.Anything)
}

func TestService_CreateBooking_ParticipantsTooLow(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockTourGate), new(MockNotificationSender))

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		TourID:            5,
		Date:              time.Now().Add(72 * time.Hour),
		ParticipantsCount: 0,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_TooSoon(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockTourGate), new(MockNotificationSender))

	// 12h ahead, below the 24h minimum lead time
	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		TourID:            5,
		Date:              time.Now().Add(12 * time.Hour),
		ParticipantsCount: 2,
	})

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_CreateBooking_CapacityExceeded(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("CreateAdmitted", mock.Anything, mock.Anything).Return(repository.ErrCapacityExceeded)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		TourID:            5,
		Date:              time.Now().Add(72 * time.Hour),
		ParticipantsCount: 8,
	})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestService_CreateBooking_Duplicate(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("CreateAdmitted", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		TourID:            5,
		Date:              time.Now().Add(72 * time.Hour),
		ParticipantsCount: 1,
	})

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestService_CreateBooking_InactiveTour(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("CreateAdmitted", mock.Anything, mock.Anything).Return(repository.ErrTourInactive)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingRequest{
		TourID:            5,
		Date:              time.Now().Add(72 * time.Hour),
		ParticipantsCount: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_UpdateStatus_ClientCancelsOwnBooking(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockNotifs := new(MockNotificationSender)

	userID := int64(42)
	ownerID := int64(7)
	b := &domain.Booking{ID: 1, TourID: 5, UserID: &userID, Status: domain.BookingConfirmed}

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	mockBookings.On("GetTourOwner", mock.Anything, int64(1)).Return(&ownerID, nil)
	mockBookings.On("UpdateStatusGuard", mock.Anything, int64(1), domain.BookingConfirmed, domain.BookingCancelled).Return(nil)
	mockNotifs.On("NotifyBookingCancelled", ownerID, mock.Anything).Return()

	service := newTestService(mockBookings, new(MockTourGate), mockNotifs)

	actor := policy.Actor{ID: 42, Role: domain.RoleClient}
	updated, err := service.UpdateStatus(context.Background(), actor, 1, "cancelled")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)
	mockNotifs.AssertCalled(t, "NotifyBookingCancelled", ownerID, mock.Anything)
}

func TestService_UpdateStatus_ClientCannotConfirm(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	userID := int64(42)
	ownerID := int64(7)
	b := &domain.Booking{ID: 1, TourID: 5, UserID: &userID, Status: domain.BookingPending}

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	mockBookings.On("GetTourOwner", mock.Anything, int64(1)).Return(&ownerID, nil)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	actor := policy.Actor{ID: 42, Role: domain.RoleClient}
	_, err := service.UpdateStatus(context.Background(), actor, 1, "confirmed")

	assert.ErrorIs(t, err, ErrForbidden)
	mockBookings.AssertNotCalled(t, "UpdateStatusGuard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_CancelledIsTerminal(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	userID := int64(42)
	b := &domain.Booking{ID: 1, TourID: 5, UserID: &userID, Status: domain.BookingCancelled}
	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	actor := policy.Actor{ID: 1, Role: domain.RoleAdmin}
	for _, next := range []string{"pending", "confirmed", "paid", "cancelled"} {
		_, err := service.UpdateStatus(context.Background(), actor, 1, next)
		assert.ErrorIs(t, err, ErrInvalidState, "cancelled -> %s must be rejected", next)
	}
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockTourGate), new(MockNotificationSender))

	actor := policy.Actor{ID: 1, Role: domain.RoleAdmin}
	_, err := service.UpdateStatus(context.Background(), actor, 1, "refunded")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_UpdateStatus_StaleGuardSurfacesConflict(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	userID := int64(42)
	ownerID := int64(7)
	b := &domain.Booking{ID: 1, TourID: 5, UserID: &userID, Status: domain.BookingPending}

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	mockBookings.On("GetTourOwner", mock.Anything, int64(1)).Return(&ownerID, nil)
	// A concurrent transition already moved the row off pending.
	mockBookings.On("UpdateStatusGuard", mock.Anything, int64(1), domain.BookingPending, domain.BookingConfirmed).Return(repository.ErrStale)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	actor := policy.Actor{ID: 7, Role: domain.RoleCompany}
	_, err := service.UpdateStatus(context.Background(), actor, 1, "confirmed")

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_UpdateStatus_PaidToCancelledByOwner(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockNotifs := new(MockNotificationSender)

	userID := int64(42)
	ownerID := int64(7)
	b := &domain.Booking{ID: 1, TourID: 5, UserID: &userID, Status: domain.BookingPaid}

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	mockBookings.On("GetTourOwner", mock.Anything, int64(1)).Return(&ownerID, nil)
	mockBookings.On("UpdateStatusGuard", mock.Anything, int64(1), domain.BookingPaid, domain.BookingCancelled).Return(nil)
	mockNotifs.On("NotifyBookingCancelled", ownerID, mock.Anything).Return()

	service := newTestService(mockBookings, new(MockTourGate), mockNotifs)

	actor := policy.Actor{ID: 7, Role: domain.RoleCompany}
	updated, err := service.UpdateStatus(context.Background(), actor, 1, "cancelled")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)
}

func TestService_GetByID_StrangerForbidden(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	userID := int64(42)
	ownerID := int64(7)
	b := &domain.Booking{ID: 1, TourID: 5, UserID: &userID, Status: domain.BookingPending}

	mockBookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	mockBookings.On("GetTourOwner", mock.Anything, int64(1)).Return(&ownerID, nil)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	actor := policy.Actor{ID: 1000, Role: domain.RoleClient}
	_, err := service.GetByID(context.Background(), actor, 1)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Delete_AdminOnly(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("Delete", mock.Anything, int64(1)).Return(nil)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	err := service.Delete(context.Background(), policy.Actor{ID: 42, Role: domain.RoleClient}, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	err = service.Delete(context.Background(), policy.Actor{ID: 1, Role: domain.RoleAdmin}, 1)
	assert.NoError(t, err)
}

func TestService_Availability(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourGate)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	mockTours.On("GetByID", mock.Anything, int64(5)).Return(&domain.Tour{ID: 5, Capacity: 10, IsActive: true}, nil)
	mockBookings.On("SumParticipants", mock.Anything, int64(5), date).Return(6, nil)

	service := newTestService(mockBookings, mockTours, new(MockNotificationSender))

	available, err := service.Availability(context.Background(), 5, date)

	assert.NoError(t, err)
	assert.Equal(t, 4, available)
}

func TestService_Availability_NeverNegative(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockTours := new(MockTourGate)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	// Capacity shrank after bookings were admitted.
	mockTours.On("GetByID", mock.Anything, int64(5)).Return(&domain.Tour{ID: 5, Capacity: 4, IsActive: true}, nil)
	mockBookings.On("SumParticipants", mock.Anything, int64(5), date).Return(6, nil)

	service := newTestService(mockBookings, mockTours, new(MockNotificationSender))

	available, err := service.Availability(context.Background(), 5, date)

	assert.NoError(t, err)
	assert.Equal(t, 0, available)
}

func TestService_List_ByRole(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	mockBookings.On("ListAll", mock.Anything, 20, 0).Return([]domain.Booking{{ID: 1}, {ID: 2}}, nil)
	mockBookings.On("ListByCompanyOwner", mock.Anything, int64(7), 20, 0).Return([]domain.Booking{{ID: 1}}, nil)
	mockBookings.On("ListByUser", mock.Anything, int64(42), 20, 0).Return([]domain.Booking{{ID: 2}}, nil)

	service := newTestService(mockBookings, new(MockTourGate), new(MockNotificationSender))

	all, err := service.List(context.Background(), policy.Actor{ID: 1, Role: domain.RoleAdmin}, 20, 0)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := service.List(context.Background(), policy.Actor{ID: 7, Role: domain.RoleCompany}, 20, 0)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	own, err := service.List(context.Background(), policy.Actor{ID: 42, Role: domain.RoleClient}, 20, 0)
	assert.NoError(t, err)
	assert.Len(t, own, 1)
}
