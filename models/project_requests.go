package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest starts a new project.
type CreateProjectRequest struct {
	Name                 string           `json:"name" binding:"required"`
	ClientID             string           `json:"clientId" binding:"required"`
	Address              string           `json:"address,omitempty"`
	Description          string           `json:"description,omitempty"`
	Budget               decimal.Decimal  `json:"budget"`
	DefaultRetentionRate *decimal.Decimal `json:"defaultRetentionRate,omitempty"`
	DefaultTaxRate       *decimal.Decimal `json:"defaultTaxRate,omitempty"`
	StartDate            *time.Time       `json:"startDate,omitempty"`
	EndDate              *time.Time       `json:"endDate,omitempty"`
	ManagerID            string           `json:"managerId,omitempty"`
}

// UpdateProjectRequest edits a project. Nil fields are left alone.
type UpdateProjectRequest struct {
	Name                 *string          `json:"name,omitempty"`
	Status               *ProjectStatus   `json:"status,omitempty"`
	Address              *string          `json:"address,omitempty"`
	Description          *string          `json:"description,omitempty"`
	Budget               *decimal.Decimal `json:"budget,omitempty"`
	DefaultRetentionRate *decimal.Decimal `json:"defaultRetentionRate,omitempty"`
	DefaultTaxRate       *decimal.Decimal `json:"defaultTaxRate,omitempty"`
	StartDate            *time.Time       `json:"startDate,omitempty"`
	EndDate              *time.Time       `json:"endDate,omitempty"`
	ManagerID            *string          `json:"managerId,omitempty"`
}
