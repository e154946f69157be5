package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/identity"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

const testPassword = "warehouse1"

func newAuthService() (*AuthService, *MockUserRepository) {
	repo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-auth-service",
		AccessTokenExpiration: time.Hour,
		Issuer:                "wms-test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop()), repo
}

func newActiveUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("pat.warehouse", testPassword, identity.RoleStaff)
	assert.NoError(t, err)
	assert.NoError(t, user.SetDisplayName("Pat Warehouse"))
	user.ClearDomainEvents()
	return user
}

func TestAuthService_Login(t *testing.T) {
	t.Run("returns a token and records the login time", func(t *testing.T) {
		service, repo := newAuthService()
		ctx := context.Background()
		user := newActiveUser(t)

		repo.On("FindByUsername", mock.Anything, "pat.warehouse").Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		result, err := service.Login(ctx, LoginRequest{
			Username: "pat.warehouse",
			Password: testPassword,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "pat.warehouse", result.User.Username)
		assert.Equal(t, "staff", result.User.Role)
		assert.NotNil(t, user.LastLoginAt)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		service, repo := newAuthService()
		ctx := context.Background()
		user := newActiveUser(t)

		repo.On("FindByUsername", mock.Anything, "pat.warehouse").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{
			Username: "pat.warehouse",
			Password: "not-the-password1",
		})

		assert.Error(t, err)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown user with the same error as a bad password", func(t *testing.T) {
		service, repo := newAuthService()
		ctx := context.Background()

		repo.On("FindByUsername", mock.Anything, "nobody").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{
			Username: "nobody",
			Password: testPassword,
		})

		assert.Error(t, err)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects a deactivated account", func(t *testing.T) {
		service, repo := newAuthService()
		ctx := context.Background()
		user := newActiveUser(t)
		assert.NoError(t, user.Deactivate())

		repo.On("FindByUsername", mock.Anything, "pat.warehouse").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{
			Username: "pat.warehouse",
			Password: testPassword,
		})

		assert.Error(t, err)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})

	t.Run("login succeeds even when the timestamp write fails", func(t *testing.T) {
		service, repo := newAuthService()
		ctx := context.Background()
		user := newActiveUser(t)

		repo.On("FindByUsername", mock.Anything, "pat.warehouse").Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(shared.ErrConcurrencyConflict)

		result, err := service.Login(ctx, LoginRequest{
			Username: "pat.warehouse",
			Password: testPassword,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})
}

func TestAuthService_GetByID(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		service, repo := newAuthService()
		ctx := context.Background()
		user := newActiveUser(t)

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		result, err := service.GetByID(ctx, user.ID)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, result.ID)
		assert.Equal(t, "Pat Warehouse", result.DisplayName)
	})

	t.Run("propagates not found", func(t *testing.T) {
		service, repo := newAuthService()
		ctx := context.Background()
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(ctx, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
