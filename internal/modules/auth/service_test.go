package auth

import (
	"context"
	"testing"

	"tourbook/internal/domain"
	"tourbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_AlwaysClientRole(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenIssuer)

	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockTokens.On("GenerateToken", int64(42), "client").Return("token-123", nil)

	service := NewService(mockUsers, mockTokens)

	resp, err := service.Register(context.Background(), RegisterRequest{
		FullName: "Alice",
		Email:    "Alice@Example.COM",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-123", resp.Token)
	assert.Equal(t, domain.RoleClient, resp.User.Role)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEqual(t, "supersecret", resp.User.PasswordHash)
}

func TestService_Register_ShortPassword(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockTokenIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	service := NewService(mockUsers, new(MockTokenIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenIssuer)

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           42,
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		IsActive:     true,
	}, nil)
	mockTokens.On("GenerateToken", int64(42), "client").Return("token-123", nil)

	service := NewService(mockUsers, mockTokens)

	resp, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-123", resp.Token)
}

func TestService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           42,
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	service := NewService(mockUsers, new(MockTokenIssuer))

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmailSameError(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	service := NewService(mockUsers, new(MockTokenIssuer))

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	// Same error as a bad password, so the endpoint never leaks which
	// emails exist.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_InactiveUser(t *testing.T) {
	mockUsers := new(MockUserRepository)

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           42,
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil)

	service := NewService(mockUsers, new(MockTokenIssuer))

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})

	assert.ErrorIs(t, err, ErrUserInactive)
}
