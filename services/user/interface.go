package user

import (
	"context"

	userRepo "siteworks/database/repository/user"
	"siteworks/models"
)

// UserService handles accounts: registration, login, profile reads, and
// the FCM token handshake for push notifications.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
