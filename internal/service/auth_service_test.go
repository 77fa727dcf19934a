package service

import (
	"context"
	"testing"

	"labelia/internal/config"
	"labelia/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTL:      60,
		AdminEmail:    "admin@labelia.fr",
		AdminPassword: "",
	}
}

func adminUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           uuid.New(),
		Email:        "admin@labelia.fr",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success issues a verifiable token", func(t *testing.T) {
		user := adminUser(t, "correct-password")
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", ctx, "admin@labelia.fr").Return(user, nil)

		svc := NewAuthService(mockRepo, testAuthConfig(), zerolog.Nop())
		resp, err := svc.Login(ctx, &model.LoginRequest{
			Email:    "admin@labelia.fr",
			Password: "correct-password",
		})

		require.NoError(t, err)
		assert.Equal(t, "admin@labelia.fr", resp.Email)
		assert.Equal(t, model.RoleAdmin, resp.Role)

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, model.RoleAdmin, claims["role"])
		assert.Equal(t, "admin@labelia.fr", claims["email"])
	})

	t.Run("Wrong password", func(t *testing.T) {
		user := adminUser(t, "correct-password")
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", ctx, "admin@labelia.fr").Return(user, nil)

		svc := NewAuthService(mockRepo, testAuthConfig(), zerolog.Nop())
		_, err := svc.Login(ctx, &model.LoginRequest{
			Email:    "admin@labelia.fr",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", ctx, "nobody@labelia.fr").Return(nil, nil)

		svc := NewAuthService(mockRepo, testAuthConfig(), zerolog.Nop())
		_, err := svc.Login(ctx, &model.LoginRequest{
			Email:    "nobody@labelia.fr",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("Empty credentials", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), testAuthConfig(), zerolog.Nop())
		_, err := svc.Login(ctx, &model.LoginRequest{})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates admin when absent", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.AdminPassword = "bootstrap-password"

		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", ctx, "admin@labelia.fr").Return(nil, nil)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "admin@labelia.fr" &&
				u.Role == model.RoleAdmin &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("bootstrap-password")) == nil
		})).Return(nil)

		svc := NewAuthService(mockRepo, cfg, zerolog.Nop())
		require.NoError(t, svc.EnsureAdmin(ctx))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Skips when admin exists", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.AdminPassword = "bootstrap-password"

		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", ctx, "admin@labelia.fr").Return(adminUser(t, "x"), nil)

		svc := NewAuthService(mockRepo, cfg, zerolog.Nop())
		require.NoError(t, svc.EnsureAdmin(ctx))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Skips without configured password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		svc := NewAuthService(mockRepo, testAuthConfig(), zerolog.Nop())
		require.NoError(t, svc.EnsureAdmin(ctx))
		mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}
