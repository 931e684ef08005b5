package repository

import (
	"context"
	"errors"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

type bookingModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	Reference         string    `gorm:"column:reference"`
	TourID            int64     `gorm:"column:tour_id"`
	UserID            *int64    `gorm:"column:user_id"`
	ParticipantsCount int       `gorm:"column:participants_count"`
	Date              time.Time `gorm:"column:date"`
	Status            string    `gorm:"column:status"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:                m.ID,
		Reference:         m.Reference,
		TourID:            m.TourID,
		UserID:            m.UserID,
		ParticipantsCount: m.ParticipantsCount,
		Date:              m.Date,
		Status:            domain.BookingStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                b.ID,
		Reference:         b.Reference,
		TourID:            b.TourID,
		UserID:            b.UserID,
		ParticipantsCount: b.ParticipantsCount,
		Date:              b.Date,
		Status:            string(b.Status),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// activeStatuses are the booking states that count against tour capacity.
var activeStatuses = []string{
	string(domain.BookingPending),
	string(domain.BookingConfirmed),
	string(domain.BookingPaid),
}

// CreateAdmitted inserts the booking only if the tour still has room on that
// date. The whole read-then-write sequence runs in one transaction holding an
// exclusive lock on the tour row, so concurrent requests for the same tour
// queue behind each other and re-read fresh sums once the lock is released.
// Requests for other tours proceed in parallel.
//
// Without the lock two transactions can read the same remaining capacity and
// both insert, overselling the last seats.
func (r *BookingRepository) CreateAdmitted(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tour struct {
			ID       int64
			Capacity int
			IsActive bool
		}

		q := tx.Table("tours").Where("id = ?", b.TourID)
		// SQLite has a single writer per database, which already serializes
		// the critical section; FOR UPDATE is a PostgreSQL construct.
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Take(&tour).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !tour.IsActive {
			return ErrTourInactive
		}

		var total int64
		if err := tx.Model(&bookingModel{}).
			Select("COALESCE(SUM(participants_count), 0)").
			Where("tour_id = ? AND date = ? AND status IN ?", b.TourID, b.Date, activeStatuses).
			Scan(&total).Error; err != nil {
			return err
		}

		if int64(b.ParticipantsCount) > int64(tour.Capacity)-total {
			return ErrCapacityExceeded
		}

		var dup int64
		if err := tx.Model(&bookingModel{}).
			Where("tour_id = ? AND user_id = ? AND date = ? AND status != ?",
				b.TourID, b.UserID, b.Date, string(domain.BookingCancelled)).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicate
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			// The partial unique index is the authoritative duplicate guard.
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

// UpdateStatusGuard flips the status only when the row is still in the
// expected state, so a concurrent transition loses instead of overwriting.
func (r *BookingRepository) UpdateStatusGuard(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainBooking(m), nil
}

// GetTourOwner returns the user id owning the booking's tour's company, or
// nil when the company has no owner.
func (r *BookingRepository) GetTourOwner(ctx context.Context, bookingID int64) (*int64, error) {
	var row struct {
		OwnerID *int64
	}
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("companies.owner_id AS owner_id").
		Joins("JOIN tours ON tours.id = bookings.tour_id").
		Joins("JOIN companies ON companies.id = tours.company_id").
		Where("bookings.id = ?", bookingID).
		Take(&row).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.OwnerID, nil
}

// SumParticipants reports the capacity already claimed for (tour, date) by
// non-cancelled bookings.
func (r *BookingRepository) SumParticipants(ctx context.Context, tourID int64, date time.Time) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Select("COALESCE(SUM(participants_count), 0)").
		Where("tour_id = ? AND date = ? AND status IN ?", tourID, date, activeStatuses).
		Scan(&total).Error
	return int(total), err
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

// ListByCompanyOwner returns bookings against all tours owned by the user's
// company.
func (r *BookingRepository) ListByCompanyOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN tours ON tours.id = bookings.tour_id").
		Joins("JOIN companies ON companies.id = tours.company_id").
		Where("companies.owner_id = ?", ownerID).
		Order("bookings.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
