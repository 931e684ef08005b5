package domain

import "time"

type Tour struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"index;not null" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty"`
	Price       float64   `json:"price" gorm:"not null" validate:"required,gt=0"`
	Location    string    `json:"location" gorm:"index"`
	Duration    string    `json:"duration,omitempty"`
	Capacity    int       `json:"capacity" gorm:"default:50;not null" validate:"required,gte=1"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	Rating      float64   `json:"rating" gorm:"default:0"`
	CompanyID   int64     `json:"company_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}
