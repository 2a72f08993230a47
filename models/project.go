package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the state of a construction project.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Project is one construction project: the unit dashboards, task boards,
// chat channels, documents and invoices hang off.
type Project struct {
	ID          string          `bson:"id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	ClientID    string          `bson:"clientId" json:"clientId"`
	Status      ProjectStatus   `bson:"status" json:"status"`
	Address     string          `bson:"address,omitempty" json:"address,omitempty"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Budget      decimal.Decimal `bson:"budget" json:"budget"`
	// DefaultRetentionRate seeds new invoices for this project; construction
	// clients commonly withhold a percentage until practical completion.
	DefaultRetentionRate decimal.Decimal `bson:"defaultRetentionRate" json:"defaultRetentionRate"`
	DefaultTaxRate       decimal.Decimal `bson:"defaultTaxRate" json:"defaultTaxRate"`
	StartDate            *time.Time      `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate              *time.Time      `bson:"endDate,omitempty" json:"endDate,omitempty"`
	ManagerID            string          `bson:"managerId,omitempty" json:"managerId,omitempty"`
	CreatedAt            time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// ProjectDashboard is the aggregate view rendered on a project's home
// screen. Invoice aggregates are derived through the billing engine, never
// read from stored totals directly.
type ProjectDashboard struct {
	ProjectID        string          `json:"projectId"`
	TaskCounts       map[string]int  `json:"taskCounts"`
	OpenTasks        int             `json:"openTasks"`
	OverdueTasks     int             `json:"overdueTasks"`
	InvoicedTotal    decimal.Decimal `json:"invoicedTotal"`
	CollectedTotal   decimal.Decimal `json:"collectedTotal"`
	OutstandingTotal decimal.Decimal `json:"outstandingTotal"`
	OverdueInvoices  int             `json:"overdueInvoices"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}
