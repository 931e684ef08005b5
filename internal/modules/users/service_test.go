package users

import (
	"context"
	"testing"

	"tourbook/internal/domain"
	"tourbook/internal/policy"
	"tourbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role string, isActive *bool, search string, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, role, isActive, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var admin = policy.Actor{ID: 1, Role: domain.RoleAdmin}

func TestService_AdminOnlySurface(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers)
	client := policy.Actor{ID: 42, Role: domain.RoleClient}

	_, _, err := service.List(context.Background(), client, ListUsersFilter{})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.GetByID(context.Background(), client, 7)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.Update(context.Background(), client, 7, UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, service.Deactivate(context.Background(), client, 7), ErrForbidden)
	assert.ErrorIs(t, service.Delete(context.Background(), client, 7), ErrForbidden)

	mockUsers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_List_ClampsPaging(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("List", mock.Anything, "client", (*bool)(nil), "", 20, 0).
		Return([]domain.User{{ID: 2}, {ID: 3}}, int64(2), nil)

	service := NewService(mockUsers)

	list, total, err := service.List(context.Background(), admin, ListUsersFilter{Role: "client", Limit: 500, Offset: -3})
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), total)
}

func TestService_Update_CannotChangeOwnRole(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers)

	role := string(domain.RoleClient)
	_, err := service.Update(context.Background(), admin, admin.ID, UpdateUserRequest{Role: &role})

	assert.ErrorIs(t, err, ErrSelfAction)
	mockUsers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_RejectsUnknownRole(t *testing.T) {
	service := NewService(new(MockUserRepository))

	role := "superuser"
	_, err := service.Update(context.Background(), admin, 7, UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Update_PatchesFields(t *testing.T) {
	mockUsers := new(MockUserRepository)

	existing := &domain.User{ID: 7, FullName: "Old Name", Email: "u@test.local", Role: domain.RoleClient}
	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	mockUsers.On("Update", mock.Anything, existing).Return(nil)

	service := NewService(mockUsers)

	name := "  New Name "
	role := string(domain.RoleCompany)
	u, err := service.Update(context.Background(), admin, 7, UpdateUserRequest{FullName: &name, Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", u.FullName)
	assert.Equal(t, domain.RoleCompany, u.Role)
}

func TestService_Update_DuplicatePhone(t *testing.T) {
	mockUsers := new(MockUserRepository)

	existing := &domain.User{ID: 7, Email: "u@test.local", Role: domain.RoleClient}
	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	mockUsers.On("Update", mock.Anything, existing).Return(repository.ErrDuplicate)

	service := NewService(mockUsers)

	phone := "+77010000000"
	_, err := service.Update(context.Background(), admin, 7, UpdateUserRequest{Phone: &phone})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestService_Deactivate(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("SetActive", mock.Anything, int64(7), false).Return(nil)

	service := NewService(mockUsers)

	assert.NoError(t, service.Deactivate(context.Background(), admin, 7))
	mockUsers.AssertCalled(t, "SetActive", mock.Anything, int64(7), false)

	// Admins cannot lock themselves out.
	assert.ErrorIs(t, service.Deactivate(context.Background(), admin, admin.ID), ErrSelfAction)
}

func TestService_Delete(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("Delete", mock.Anything, int64(7)).Return(nil)

	service := NewService(mockUsers)

	assert.NoError(t, service.Delete(context.Background(), admin, 7))

	assert.ErrorIs(t, service.Delete(context.Background(), admin, admin.ID), ErrSelfAction)
}

func TestService_Delete_NotFound(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("Delete", mock.Anything, int64(99)).Return(repository.ErrNotFound)

	service := NewService(mockUsers)

	assert.ErrorIs(t, service.Delete(context.Background(), admin, 99), ErrNotFound)
}
