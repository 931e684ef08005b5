package users

import (
	"context"

	"tourbook/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, role string, isActive *bool, search string, limit, offset int) ([]domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}
