package repository

import (
	"context"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type TourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) DB() *gorm.DB { return r.db }

type tourModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url"`
	Price       float64   `gorm:"column:price"`
	Location    string    `gorm:"column:location"`
	Duration    string    `gorm:"column:duration"`
	Capacity    int       `gorm:"column:capacity"`
	IsActive    bool      `gorm:"column:is_active"`
	Rating      float64   `gorm:"column:rating"`
	CompanyID   int64     `gorm:"column:company_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (tourModel) TableName() string { return "tours" }

func toDomainTour(m tourModel) *domain.Tour {
	return &domain.Tour{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Price:       m.Price,
		Location:    m.Location,
		Duration:    m.Duration,
		Capacity:    m.Capacity,
		IsActive:    m.IsActive,
		Rating:      m.Rating,
		CompanyID:   m.CompanyID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toTourModel(t *domain.Tour) tourModel {
	return tourModel{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ImageURL:    t.ImageURL,
		Price:       t.Price,
		Location:    t.Location,
		Duration:    t.Duration,
		Capacity:    t.Capacity,
		IsActive:    t.IsActive,
		Rating:      t.Rating,
		CompanyID:   t.CompanyID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *TourRepository) Create(ctx context.Context, t *domain.Tour) error {
	m := toTourModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*t = *toDomainTour(m)
	return nil
}

func (r *TourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	var m tourModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainTour(m), nil
}

// GetWithCompany loads the tour and its owning company in one round trip,
// used where handlers need the owner for authorization.
func (r *TourRepository) GetWithCompany(ctx context.Context, id int64) (*domain.Tour, *domain.Company, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var c domain.Company
	if err := r.db.WithContext(ctx).First(&c, t.CompanyID).Error; err != nil {
		if isNotFound(err) {
			return t, nil, nil
		}
		return nil, nil, err
	}
	return t, &c, nil
}

func (r *TourRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.Tour, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&tourModel{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []tourModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Tour, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTour(m))
	}
	return out, total, nil
}

func (r *TourRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Tour, error) {
	var models []tourModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Tour, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTour(m))
	}
	return out, nil
}

func (r *TourRepository) Update(ctx context.Context, t *domain.Tour) error {
	m := toTourModel(t)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*t = *toDomainTour(m)
	return nil
}

func (r *TourRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).Model(&tourModel{}).Where("id = ?", id).Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the tour; bookings and reviews cascade via FK rules.
func (r *TourRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&tourModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
