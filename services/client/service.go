package client

import (
	"context"
	"fmt"

	clientRepo "siteworks/database/repository/client"
	"siteworks/models"
)

// ClientService manages the customers that projects are billed to.
type ClientService interface {
	CreateClient(ctx context.Context, c models.Client) (*models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	UpdateClient(ctx context.Context, c models.Client) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context) ([]models.Client, error)
}

// DefaultClientService is the production implementation.
type DefaultClientService struct {
	Repo clientRepo.ClientRepository
}

func (s *DefaultClientService) CreateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	return s.Repo.Create(ctx, c)
}

func (s *DefaultClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultClientService) UpdateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("client id is required")
	}
	return s.Repo.Update(ctx, c)
}

func (s *DefaultClientService) DeleteClient(ctx context.Context, id string) error {
	return s.Repo.DeleteByID(ctx, id)
}

func (s *DefaultClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.Repo.List(ctx)
}
