package repository

import (
	"context"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) DB() *gorm.DB { return r.db }

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	var c domain.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByOwner returns the company owned by userID, or ErrNotFound. A user owns
// at most one company.
func (r *CompanyRepository) GetByOwner(ctx context.Context, userID int64) (*domain.Company, error) {
	var c domain.Company
	if err := r.db.WithContext(ctx).Where("owner_id = ?", userID).First(&c).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]domain.Company, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []domain.Company
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *domain.Company) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes the company; its tours (and their bookings and reviews) go
// with it via the cascade rules set up in database.Migrate.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Company{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
