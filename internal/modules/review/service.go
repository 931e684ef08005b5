package review

import (
	"context"
	"errors"

	"tourbook/internal/domain"
	"tourbook/internal/policy"
	"tourbook/internal/repository"
)

type Service struct {
	reviews   ReviewRepository
	tours     TourGate
	companies CompanyGate
}

func NewService(reviews ReviewRepository, tours TourGate, companies CompanyGate) *Service {
	return &Service{reviews: reviews, tours: tours, companies: companies}
}

// Create validates the target, guards the one-review-per-(author,target)
// invariant and recomputes the tour's rating. The existence pre-check is a
// fast path; the partial unique index catches the race and surfaces here as
// ErrDuplicate.
func (s *Service) Create(ctx context.Context, authorID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	targetType := domain.ReviewTargetType(req.TargetType)

	rv := &domain.Review{
		AuthorID:   &authorID,
		TargetType: targetType,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	switch targetType {
	case domain.ReviewTargetTour:
		if _, err := s.tours.GetByID(ctx, req.TargetID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		rv.TourID = &req.TargetID

	case domain.ReviewTargetCompany:
		if _, err := s.companies.GetByID(ctx, req.TargetID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		rv.CompanyID = &req.TargetID

	default:
		return nil, ErrValidation
	}

	exists, err := s.reviews.ExistsByAuthorAndTarget(ctx, authorID, targetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	// Companies carry no persisted rating rollup; only tours do.
	if targetType == domain.ReviewTargetTour {
		if err := s.reviews.RecalculateTourRating(ctx, req.TargetID); err != nil {
			return nil, err
		}
	}

	return rv, nil
}

func (s *Service) ListByTarget(ctx context.Context, targetType string, targetID int64, limit, offset int) ([]domain.Review, int64, error) {
	tt := domain.ReviewTargetType(targetType)
	if tt != domain.ReviewTargetTour && tt != domain.ReviewTargetCompany {
		return nil, 0, ErrValidation
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListByTarget(ctx, tt, targetID, limit, offset)
}

func (s *Service) Moderate(ctx context.Context, actor policy.Actor, reviewID int64) (*domain.Review, error) {
	if !policy.CanModerateReview(actor) {
		return nil, ErrForbidden
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.reviews.SetModerated(ctx, reviewID, true); err != nil {
		return nil, err
	}
	rv.IsModerated = true
	return rv, nil
}

// Delete removes a review and restores the tour's rating to the aggregate of
// the remaining reviews, 0 when none are left.
func (s *Service) Delete(ctx context.Context, actor policy.Actor, reviewID int64) error {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !policy.CanDeleteReview(actor, rv.AuthorID) {
		return ErrForbidden
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if rv.TargetType == domain.ReviewTargetTour && rv.TourID != nil {
		return s.reviews.RecalculateTourRating(ctx, *rv.TourID)
	}
	return nil
}
