package catalog

import (
	"context"

	"tourbook/internal/domain"
)

type TourRepository interface {
	Create(ctx context.Context, t *domain.Tour) error
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
	GetWithCompany(ctx context.Context, id int64) (*domain.Tour, *domain.Company, error)
	ListActive(ctx context.Context, limit, offset int) ([]domain.Tour, int64, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Tour, error)
	Update(ctx context.Context, t *domain.Tour) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	GetByOwner(ctx context.Context, userID int64) (*domain.Company, error)
	List(ctx context.Context, limit, offset int) ([]domain.Company, int64, error)
	Update(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id int64) error
}
