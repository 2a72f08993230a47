package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "siteworks/database/repository/user"
	"siteworks/models"
	"siteworks/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

// Register creates a new account and returns a signed token. The first
// account ever registered becomes an admin so a fresh install is usable.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	logger := utils.GetLogger()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		logger.Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	role := models.UserRoleMember
	all, err := s.Repo.List(ctx)
	if err == nil && len(all) == 0 {
		role = models.UserRoleAdmin
	}

	created, err := s.Repo.Create(ctx, models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		logger.Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	logger.Info("User registered",
		zap.String("userId", created.ID),
		zap.String("role", string(created.Role)))
	return s.authResponse(created)
}

// Authenticate verifies credentials and returns a signed token.
func (s *DefaultUserService) Authenticate(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	rec, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password")
		}
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return s.authResponse(rec)
}

func (s *DefaultUserService) authResponse(u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.AuthResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Token: token,
	}, nil
}

// GetByID returns a user's profile.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all accounts. Admin-only at the route level.
func (s *DefaultUserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.List(ctx)
}

// UpdateFCMToken stores the device push token reported by the mobile app.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	if token == "" {
		return fmt.Errorf("fcm token is required")
	}
	return s.Repo.UpdateFCMToken(ctx, id, token)
}
