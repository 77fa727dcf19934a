package service

import (
	"context"
	"fmt"
	"time"

	"labelia/internal/config"
	"labelia/internal/model"
	"labelia/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Claims are the token claims issued to back-office users.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// authService implements AuthService with HMAC-signed JWTs.
type authService struct {
	userRepo repository.UserRepository
	cfg      config.AuthConfig
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, cfg config.AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Login verifies credentials and issues a signed token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		s.logger.Warn().Str("email", req.Email).Msg("login for unknown user")
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("login with wrong password")
		return nil, model.ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.TokenTTL) * time.Minute)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to sign token")
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info().
		Str("email", user.Email).
		Str("role", user.Role).
		Msg("user logged in")

	return &model.LoginResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist
// yet. With no ADMIN_PASSWORD configured, bootstrap is skipped so a
// deployment can manage accounts externally.
func (s *authService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminPassword == "" {
		s.logger.Info().Msg("no admin password configured, skipping admin bootstrap")
		return nil
	}

	existing, err := s.userRepo.GetByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		ID:           uuid.New(),
		Email:        s.cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.Info().Str("email", admin.Email).Msg("bootstrap admin user created")
	return nil
}
