package users

import (
	"context"
	"errors"
	"log"
	"strings"

	"tourbook/internal/domain"
	"tourbook/internal/policy"
	"tourbook/internal/repository"
)

// Service is the admin-only account management surface. Deleting a user keeps
// their bookings, reviews and owned company around with the author/owner
// reference nulled; deactivating only blocks login.
type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) List(ctx context.Context, actor policy.Actor, filter ListUsersFilter) ([]domain.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.users.List(ctx, filter.Role, filter.IsActive, filter.Search, filter.Limit, filter.Offset)
}

func (s *Service) GetByID(ctx context.Context, actor policy.Actor, userID int64) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Update patches profile fields and, for other accounts, the role. Admins
// cannot change their own role.
func (s *Service) Update(ctx context.Context, actor policy.Actor, userID int64, req UpdateUserRequest) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if req.Role != nil {
		if userID == actor.ID {
			return nil, ErrSelfAction
		}
		switch domain.UserRole(*req.Role) {
		case domain.RoleAdmin, domain.RoleCompany, domain.RoleClient:
		default:
			return nil, ErrValidation
		}
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, ErrValidation
		}
		u.FullName = name
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Role != nil {
		u.Role = domain.UserRole(*req.Role)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	log.Printf("admin %d updated user %d", actor.ID, userID)
	return u, nil
}

// Deactivate blocks the account from logging in. Admins cannot lock
// themselves out.
func (s *Service) Deactivate(ctx context.Context, actor policy.Actor, userID int64) error {
	return s.setActive(ctx, actor, userID, false)
}

func (s *Service) Activate(ctx context.Context, actor policy.Actor, userID int64) error {
	return s.setActive(ctx, actor, userID, true)
}

func (s *Service) setActive(ctx context.Context, actor policy.Actor, userID int64, active bool) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if userID == actor.ID {
		return ErrSelfAction
	}
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	log.Printf("admin %d set user %d active=%t", actor.ID, userID, active)
	return nil
}

// Delete removes the account row. Their bookings, reviews and owned company
// survive with the user reference nulled by the schema's SET NULL rules.
func (s *Service) Delete(ctx context.Context, actor policy.Actor, userID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if userID == actor.ID {
		return ErrSelfAction
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	log.Printf("admin %d deleted user %d", actor.ID, userID)
	return nil
}
