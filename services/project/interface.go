package project

import (
	"context"

	projectRepo "siteworks/database/repository/project"
	taskRepo "siteworks/database/repository/task"
	"siteworks/models"
	"siteworks/services/billing"
)

// ProjectService manages construction projects and their dashboards.
type ProjectService interface {
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListProjects(ctx context.Context, clientID string) ([]models.Project, error)

	// Dashboard assembles task counts and derived invoice aggregates for
	// the project home screen. Results are cached briefly in Redis.
	Dashboard(ctx context.Context, id string) (*models.ProjectDashboard, error)
}

// DefaultProjectService is the production implementation.
type DefaultProjectService struct {
	Repo    projectRepo.ProjectRepository
	Tasks   taskRepo.TaskRepository
	Billing billing.BillingService
}
