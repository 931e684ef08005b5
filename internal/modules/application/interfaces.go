package application

import (
	"context"

	"tourbook/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.CompanyApplication) error
	GetByID(ctx context.Context, id int64) (*domain.CompanyApplication, error)
	HasPendingByUser(ctx context.Context, userID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.CompanyApplication, int64, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.CompanyApplication, int64, error)
	Approve(ctx context.Context, app *domain.CompanyApplication, adminID int64) (*domain.Company, error)
	Reject(ctx context.Context, app *domain.CompanyApplication, adminID int64, reason string) error
	Delete(ctx context.Context, id int64) error
}

type CompanyGate interface {
	GetByOwner(ctx context.Context, userID int64) (*domain.Company, error)
}
