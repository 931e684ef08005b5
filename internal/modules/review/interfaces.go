package review

import (
	"context"

	"tourbook/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsByAuthorAndTarget(ctx context.Context, authorID int64, targetType domain.ReviewTargetType, targetID int64) (bool, error)
	ListByTarget(ctx context.Context, targetType domain.ReviewTargetType, targetID int64, limit, offset int) ([]domain.Review, int64, error)
	SetModerated(ctx context.Context, id int64, moderated bool) error
	Delete(ctx context.Context, id int64) error
	RecalculateTourRating(ctx context.Context, tourID int64) error
}

type TourGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}

type CompanyGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}
