package domain

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCompany UserRole = "company"
	RoleClient  UserRole = "client"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Phone        *string   `json:"phone,omitempty" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(16);default:client;not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
