package domain

import "time"

type Company struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Address   string    `json:"address"`
	Website   string    `json:"website,omitempty"`
	WorkHours string    `json:"work_hours,omitempty"`
	OwnerID   *int64    `json:"owner_id,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User  `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	Tours []Tour `json:"tours,omitempty" gorm:"foreignKey:CompanyID"`
}
