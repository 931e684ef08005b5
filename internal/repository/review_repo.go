package repository

import (
	"context"
	"math"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) DB() *gorm.DB { return r.db }

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// ExistsByAuthorAndTarget is the fast-path duplicate pre-check; the partial
// unique indexes remain the authoritative guard.
func (r *ReviewRepository) ExistsByAuthorAndTarget(ctx context.Context, authorID int64, targetType domain.ReviewTargetType, targetID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{}).Where("author_id = ?", authorID)
	if targetType == domain.ReviewTargetTour {
		q = q.Where("tour_id = ?", targetID)
	} else {
		q = q.Where("company_id = ?", targetID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ReviewRepository) ListByTarget(ctx context.Context, targetType domain.ReviewTargetType, targetID int64, limit, offset int) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{}).Where("target_type = ?", targetType)
	if targetType == domain.ReviewTargetTour {
		q = q.Where("tour_id = ?", targetID)
	} else {
		q = q.Where("company_id = ?", targetID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []domain.Review
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) SetModerated(ctx context.Context, id int64, moderated bool) error {
	tx := r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", id).Update("is_moderated", moderated)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecalculateTourRating rewrites tours.rating from the current review set,
// rounded to two decimals, 0 when no reviews remain. Every review mutation
// path calls this, so a stale value is only ever momentary.
func (r *ReviewRepository) RecalculateTourRating(ctx context.Context, tourID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var avg *float64
		if err := tx.Model(&domain.Review{}).
			Select("AVG(rating)").
			Where("tour_id = ?", tourID).
			Scan(&avg).Error; err != nil {
			return err
		}

		rating := 0.0
		if avg != nil {
			rating = math.Round(*avg*100) / 100
		}

		return tx.Table("tours").
			Where("id = ?", tourID).
			Update("rating", rating).Error
	})
}
