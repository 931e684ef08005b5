package catalog

import (
	"context"
	"errors"
	"strings"

	"tourbook/internal/domain"
	"tourbook/internal/pkg/validator"
	"tourbook/internal/policy"
	"tourbook/internal/repository"
)

type Service struct {
	tours       TourRepository
	companies   CompanyRepository
	maxCapacity int
}

func NewService(tours TourRepository, companies CompanyRepository, maxCapacity int) *Service {
	return &Service{tours: tours, companies: companies, maxCapacity: maxCapacity}
}

// ownedCompany resolves the actor's company. Company-scoped mutations all go
// through here so a client can never reach another company's tours.
func (s *Service) ownedCompany(ctx context.Context, actor policy.Actor) (*domain.Company, error) {
	c, err := s.companies.GetByOwner(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) CreateTour(ctx context.Context, actor policy.Actor, req CreateTourRequest) (*domain.Tour, error) {
	company, err := s.ownedCompany(ctx, actor)
	if err != nil {
		return nil, err
	}

	t := &domain.Tour{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Location:    req.Location,
		Duration:    req.Duration,
		Capacity:    req.Capacity,
		IsActive:    true,
		CompanyID:   company.ID,
	}
	if fields := validator.Validate(t); fields != nil {
		return nil, ErrValidation
	}
	if t.Capacity > s.maxCapacity {
		return nil, ErrValidation
	}

	if err := s.tours.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTour(ctx context.Context, actor policy.Actor, tourID int64, req UpdateTourRequest) (*domain.Tour, error) {
	t, company, err := s.tours.GetWithCompany(ctx, tourID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var ownerID *int64
	if company != nil {
		ownerID = company.OwnerID
	}
	if !policy.IsOwnerOrAdmin(ownerID, actor) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.ImageURL != nil {
		t.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
	if req.Location != nil {
		t.Location = *req.Location
	}
	if req.Duration != nil {
		t.Duration = *req.Duration
	}
	if req.Capacity != nil {
		t.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if fields := validator.Validate(t); fields != nil {
		return nil, ErrValidation
	}
	if t.Capacity > s.maxCapacity {
		return nil, ErrValidation
	}

	if err := s.tours.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeactivateTour hides a tour from the public catalog without touching its
// existing bookings.
func (s *Service) DeactivateTour(ctx context.Context, actor policy.Actor, tourID int64) error {
	_, company, err := s.tours.GetWithCompany(ctx, tourID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	var ownerID *int64
	if company != nil {
		ownerID = company.OwnerID
	}
	if !policy.IsOwnerOrAdmin(ownerID, actor) {
		return ErrForbidden
	}

	if err := s.tours.SetActive(ctx, tourID, false); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteTour removes the tour outright; its bookings and reviews cascade.
func (s *Service) DeleteTour(ctx context.Context, actor policy.Actor, tourID int64) error {
	_, company, err := s.tours.GetWithCompany(ctx, tourID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	var ownerID *int64
	if company != nil {
		ownerID = company.OwnerID
	}
	if !policy.IsOwnerOrAdmin(ownerID, actor) {
		return ErrForbidden
	}

	if err := s.tours.Delete(ctx, tourID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) GetTour(ctx context.Context, tourID int64) (*domain.Tour, error) {
	t, err := s.tours.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTours(ctx context.Context, limit, offset int) ([]domain.Tour, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.tours.ListActive(ctx, limit, offset)
}

// ListMyTours returns all tours of the actor's company, inactive included.
func (s *Service) ListMyTours(ctx context.Context, actor policy.Actor) ([]domain.Tour, error) {
	company, err := s.ownedCompany(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.tours.ListByCompany(ctx, company.ID)
}

func (s *Service) GetCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCompanies(ctx context.Context, limit, offset int) ([]domain.Company, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.companies.List(ctx, limit, offset)
}

func (s *Service) UpdateCompany(ctx context.Context, actor policy.Actor, companyID int64, req UpdateCompanyRequest) (*domain.Company, error) {
	c, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !policy.IsOwnerOrAdmin(c.OwnerID, actor) {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		c.Name = name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Website != nil {
		c.Website = *req.Website
	}
	if req.WorkHours != nil {
		c.WorkHours = *req.WorkHours
	}

	if err := s.companies.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return c, nil
}

// DeleteCompany is admin-only; tours, bookings and reviews under the company
// are removed by the cascade rules.
func (s *Service) DeleteCompany(ctx context.Context, actor policy.Actor, companyID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.companies.Delete(ctx, companyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
