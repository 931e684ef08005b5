package repository

import (
	"context"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) DB() *gorm.DB { return r.db }

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.CompanyApplication) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		// uq_applications_user_pending closes the pre-check race.
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.CompanyApplication, error) {
	var app domain.CompanyApplication
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) HasPendingByUser(ctx context.Context, userID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.CompanyApplication{}).
		Where("user_id = ? AND status = ?", userID, domain.ApplicationPending).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.CompanyApplication, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID), limit, offset)
}

func (r *ApplicationRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.CompanyApplication, int64, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.list(ctx, q, limit, offset)
}

func (r *ApplicationRepository) list(ctx context.Context, q *gorm.DB, limit, offset int) ([]domain.CompanyApplication, int64, error) {
	var total int64
	if err := q.Model(&domain.CompanyApplication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []domain.CompanyApplication
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// Approve performs the three-way mutation as one unit: create the company
// from the application's fields, flip the applicant's role, stamp the
// application approved. A failure anywhere rolls the whole thing back, so a
// role can never change without its company existing.
//
// The status flip is guarded on the previous pending state; a concurrent
// approval of the same application loses with ErrStale.
func (r *ApplicationRepository) Approve(ctx context.Context, app *domain.CompanyApplication, adminID int64) (*domain.Company, error) {
	var company *domain.Company

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&domain.Company{}).
			Where("owner_id = ?", app.UserID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrDuplicate
		}

		c := &domain.Company{
			Name:      app.CompanyName,
			Address:   app.CompanyAddress,
			Website:   app.CompanyWebsite,
			WorkHours: app.WorkHours,
			OwnerID:   &app.UserID,
		}
		if err := tx.Create(c).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}

		if err := tx.Model(&domain.User{}).
			Where("id = ?", app.UserID).
			Update("role", domain.RoleCompany).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		res := tx.Model(&domain.CompanyApplication{}).
			Where("id = ? AND status = ?", app.ID, domain.ApplicationPending).
			Updates(map[string]interface{}{
				"status":               domain.ApplicationApproved,
				"reviewed_at":          now,
				"reviewed_by_admin_id": adminID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStale
		}

		app.Status = domain.ApplicationApproved
		app.ReviewedAt = &now
		app.ReviewedByAdminID = &adminID
		company = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// Reject stamps the terminal rejected state; guarded on pending like Approve.
func (r *ApplicationRepository) Reject(ctx context.Context, app *domain.CompanyApplication, adminID int64, reason string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.CompanyApplication{}).
		Where("id = ? AND status = ?", app.ID, domain.ApplicationPending).
		Updates(map[string]interface{}{
			"status":               domain.ApplicationRejected,
			"reviewed_at":          now,
			"reviewed_by_admin_id": adminID,
			"rejection_reason":     reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}

	app.Status = domain.ApplicationRejected
	app.ReviewedAt = &now
	app.ReviewedByAdminID = &adminID
	app.RejectionReason = reason
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.CompanyApplication{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
