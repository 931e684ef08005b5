package application

import (
	"context"
	"errors"
	"strings"

	"tourbook/internal/domain"
	"tourbook/internal/policy"
	"tourbook/internal/repository"
)

type Service struct {
	applications ApplicationRepository
	companies    CompanyGate
}

func NewService(applications ApplicationRepository, companies CompanyGate) *Service {
	return &Service{applications: applications, companies: companies}
}

// Submit files a company application for a client. One pending application
// per user; users already owning a company (or holding the company role)
// cannot apply again. The pre-checks are fast paths, the partial unique index
// on (user_id) WHERE status='pending' is the authoritative guard.
func (s *Service) Submit(ctx context.Context, actor policy.Actor, req SubmitApplicationRequest) (*domain.CompanyApplication, error) {
	if actor.Role != domain.RoleClient {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.CompanyName) == "" || strings.TrimSpace(req.CompanyAddress) == "" {
		return nil, ErrValidation
	}

	if _, err := s.companies.GetByOwner(ctx, actor.ID); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	pending, err := s.applications.HasPendingByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicate
	}

	app := &domain.CompanyApplication{
		UserID:         actor.ID,
		CompanyName:    strings.TrimSpace(req.CompanyName),
		CompanyAddress: strings.TrimSpace(req.CompanyAddress),
		CompanyWebsite: req.CompanyWebsite,
		WorkHours:      req.WorkHours,
		Status:         domain.ApplicationPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return app, nil
}

// Approve moves a pending application to approved, creating the company and
// promoting the applicant in a single transaction. Approval is one-way: a
// reviewed application can never be re-reviewed.
func (s *Service) Approve(ctx context.Context, actor policy.Actor, applicationID int64) (*domain.CompanyApplication, *domain.Company, error) {
	if !actor.IsAdmin() {
		return nil, nil, ErrForbidden
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, nil, ErrInvalidState
	}

	company, err := s.applications.Approve(ctx, app, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStale):
			return nil, nil, ErrInvalidState
		case errors.Is(err, repository.ErrDuplicate):
			return nil, nil, ErrDuplicate
		}
		return nil, nil, err
	}
	return app, company, nil
}

// Reject stamps a pending application rejected with the admin's reason.
func (s *Service) Reject(ctx context.Context, actor policy.Actor, applicationID int64, reason string) (*domain.CompanyApplication, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrValidation
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, ErrInvalidState
	}

	if err := s.applications.Reject(ctx, app, actor.ID, strings.TrimSpace(reason)); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrInvalidState
		}
		return nil, err
	}
	return app, nil
}

func (s *Service) GetByID(ctx context.Context, actor policy.Actor, applicationID int64) (*domain.CompanyApplication, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && app.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return app, nil
}

// List returns the admin view (optionally filtered by status) or, for
// everyone else, the actor's own applications.
func (s *Service) List(ctx context.Context, actor policy.Actor, status string, limit, offset int) ([]domain.CompanyApplication, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if actor.IsAdmin() {
		return s.applications.List(ctx, status, limit, offset)
	}
	return s.applications.ListByUser(ctx, actor.ID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, actor policy.Actor, applicationID int64) error {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !policy.CanDeleteApplication(actor, app) {
		return ErrForbidden
	}
	return s.applications.Delete(ctx, applicationID)
}
