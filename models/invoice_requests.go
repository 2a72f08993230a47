package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemInput is one line item in a create/update invoice payload.
type LineItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// CreateInvoiceRequest creates a draft invoice. Tax and retention rates
// default to the project's configured rates when omitted.
type CreateInvoiceRequest struct {
	ClientID      string           `json:"clientId" binding:"required"`
	ProjectID     string           `json:"projectId" binding:"required"`
	IssueDate     *time.Time       `json:"issueDate,omitempty"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	TaxRate       *decimal.Decimal `json:"taxRate,omitempty"`
	RetentionRate *decimal.Decimal `json:"retentionRate,omitempty"`
	LineItems     []LineItemInput  `json:"lineItems"`
	Notes         string           `json:"notes,omitempty"`
}

// UpdateInvoiceRequest edits a draft invoice. A nil field is left alone;
// a non-nil LineItems replaces the whole list.
type UpdateInvoiceRequest struct {
	IssueDate     *time.Time       `json:"issueDate,omitempty"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	TaxRate       *decimal.Decimal `json:"taxRate,omitempty"`
	RetentionRate *decimal.Decimal `json:"retentionRate,omitempty"`
	LineItems     *[]LineItemInput `json:"lineItems,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// InvoiceFilter narrows invoice listings. Status filters on the derived
// (effective) status, not the stored one.
type InvoiceFilter struct {
	ProjectID string        `form:"projectId"`
	ClientID  string        `form:"clientId"`
	Status    InvoiceStatus `form:"status"`
}
