package project

import (
	"context"
	"fmt"

	"siteworks/models"
	"siteworks/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProject starts a new project in the planning state. The default
// retention rate falls back to 5% when not supplied, the usual holdback on
// construction contracts.
func (s *DefaultProjectService) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	retention := decimal.NewFromFloat(0.05)
	if req.DefaultRetentionRate != nil {
		retention = *req.DefaultRetentionRate
	}
	var tax decimal.Decimal
	if req.DefaultTaxRate != nil {
		tax = *req.DefaultTaxRate
	}
	if retention.IsNegative() || tax.IsNegative() {
		return nil, fmt.Errorf("rates cannot be negative")
	}

	created, err := s.Repo.Create(ctx, models.Project{
		Name:                 req.Name,
		ClientID:             req.ClientID,
		Status:               models.ProjectStatusPlanning,
		Address:              req.Address,
		Description:          req.Description,
		Budget:               req.Budget,
		DefaultRetentionRate: retention,
		DefaultTaxRate:       tax,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		ManagerID:            req.ManagerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	utils.GetLogger().Info("Project created",
		zap.String("projectId", created.ID),
		zap.String("clientId", created.ClientID))
	return created, nil
}

// GetProject returns one project.
func (s *DefaultProjectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateProject edits the project and invalidates its cached dashboard.
func (s *DefaultProjectService) UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Budget != nil {
		p.Budget = *req.Budget
	}
	if req.DefaultRetentionRate != nil {
		p.DefaultRetentionRate = *req.DefaultRetentionRate
	}
	if req.DefaultTaxRate != nil {
		p.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = req.EndDate
	}
	if req.ManagerID != nil {
		p.ManagerID = *req.ManagerID
	}

	updated, err := s.Repo.Update(ctx, *p)
	if err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx, id)
	return updated, nil
}

// DeleteProject removes a project record.
func (s *DefaultProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx, id)
	return nil
}

// ListProjects lists all projects, or just one client's.
func (s *DefaultProjectService) ListProjects(ctx context.Context, clientID string) ([]models.Project, error) {
	if clientID != "" {
		return s.Repo.ListByClient(ctx, clientID)
	}
	return s.Repo.List(ctx)
}
