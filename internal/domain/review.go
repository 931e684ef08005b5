package domain

import "time"

type ReviewTargetType string

const (
	ReviewTargetTour    ReviewTargetType = "tour"
	ReviewTargetCompany ReviewTargetType = "company"
)

// Review targets exactly one of TourID/CompanyID depending on TargetType.
// The exclusivity is backed by a check constraint created in database.Migrate.
type Review struct {
	ID          int64            `json:"id" gorm:"primaryKey"`
	AuthorID    *int64           `json:"author_id,omitempty"`
	TargetType  ReviewTargetType `json:"target_type" gorm:"type:varchar(16);not null;check:chk_review_target,(tour_id IS NOT NULL AND company_id IS NULL) OR (tour_id IS NULL AND company_id IS NOT NULL)"`
	TourID      *int64           `json:"tour_id,omitempty"`
	CompanyID   *int64           `json:"company_id,omitempty"`
	Rating      int              `json:"rating" gorm:"not null" validate:"required,gte=1,lte=5"`
	Comment     string           `json:"comment,omitempty" gorm:"type:text"`
	IsModerated bool             `json:"is_moderated" gorm:"default:false"`
	CreatedAt   time.Time        `json:"created_at"`

	Author  *User    `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	Tour    *Tour    `json:"-" gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
	Company *Company `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}
