package domain

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// CompanyApplication is a client's request to become a company owner.
// Approved and rejected are terminal; approval also creates the Company and
// flips the applicant's role inside the same transaction.
type CompanyApplication struct {
	ID                int64             `json:"id" gorm:"primaryKey"`
	UserID            int64             `json:"user_id" gorm:"index;not null"`
	CompanyName       string            `json:"company_name" gorm:"not null" validate:"required"`
	CompanyAddress    string            `json:"company_address" gorm:"not null" validate:"required"`
	CompanyWebsite    string            `json:"company_website,omitempty"`
	WorkHours         string            `json:"work_hours,omitempty"`
	Status            ApplicationStatus `json:"status" gorm:"type:varchar(16);default:pending;not null"`
	CreatedAt         time.Time         `json:"created_at"`
	ReviewedAt        *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedByAdminID *int64            `json:"reviewed_by_admin_id,omitempty"`
	RejectionReason   string            `json:"rejection_reason,omitempty" gorm:"type:text"`

	Applicant *User `json:"applicant,omitempty" gorm:"foreignKey:UserID"`
}
