package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the stored lifecycle status of an invoice.
type InvoiceStatus string

const (
	// InvoiceStatusDraft is an invoice that has not been sent to the client.
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusSent is an invoice delivered to the client and awaiting payment.
	InvoiceStatusSent InvoiceStatus = "sent"
	// InvoiceStatusOverdue is an invoice past its due date with an open balance.
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	// InvoiceStatusPaid is a settled invoice.
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusCancelled is a voided invoice.
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusOverdue,
		InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceLineItem is one billable quantity × unit-price entry on an invoice.
// Line items are immutable once the invoice is saved; edits go through the
// invoice update endpoint, which replaces the whole list.
type InvoiceLineItem struct {
	ID          string          `bson:"id" json:"id"`
	Description string          `bson:"description" json:"description"`
	Quantity    decimal.Decimal `bson:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `bson:"unitPrice" json:"unitPrice"`
	// Amount is the precomputed quantity × unitPrice as last persisted.
	// It may be stale; derivation never reads it.
	Amount decimal.Decimal `bson:"amount,omitempty" json:"amount,omitempty"`
}

// Invoice is the billing aggregate root. The stored totals were persisted
// at some earlier point and can disagree with what the line items and
// payments would compute fresh; derivation reconciles them at read time.
type Invoice struct {
	ID            string        `bson:"id" json:"id"`
	InvoiceNumber string        `bson:"invoiceNumber" json:"invoiceNumber"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	ProjectID     string        `bson:"projectId" json:"projectId"`
	Status        InvoiceStatus `bson:"status" json:"status"`
	IssueDate     *time.Time    `bson:"issueDate,omitempty" json:"issueDate,omitempty"`
	DueDate       *time.Time    `bson:"dueDate,omitempty" json:"dueDate,omitempty"`

	TaxRate       decimal.Decimal `bson:"taxRate" json:"taxRate"`
	RetentionRate decimal.Decimal `bson:"retentionRate" json:"retentionRate"`

	// Stored totals. Zero means "not stored" for the fallback rules, except
	// Balance, where absence and zero are different facts, hence the pointer.
	Subtotal        decimal.Decimal  `bson:"subtotal" json:"subtotal"`
	TaxAmount       decimal.Decimal  `bson:"taxAmount" json:"taxAmount"`
	RetentionAmount decimal.Decimal  `bson:"retentionAmount" json:"retentionAmount"`
	Total           decimal.Decimal  `bson:"total" json:"total"`
	AmountPaid      decimal.Decimal  `bson:"amountPaid" json:"amountPaid"`
	Balance         *decimal.Decimal `bson:"balance,omitempty" json:"balance,omitempty"`

	LineItems []InvoiceLineItem `bson:"lineItems" json:"lineItems"`
	Payments  []InvoicePayment  `bson:"payments" json:"payments"`

	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// InvoiceFinancials is the derived financial view of an invoice.
type InvoiceFinancials struct {
	Subtotal        decimal.Decimal  `json:"subtotal"`
	TaxAmount       decimal.Decimal  `json:"taxAmount"`
	RetentionAmount decimal.Decimal  `json:"retentionAmount"`
	Total           decimal.Decimal  `json:"total"`
	AmountPaid      decimal.Decimal  `json:"amountPaid"`
	Balance         decimal.Decimal  `json:"balance"`
	Payments        []InvoicePayment `json:"payments"`
}

// InvoiceView is an invoice plus its derived financials and effective
// status, as returned by the read endpoints.
type InvoiceView struct {
	Invoice
	Financials      InvoiceFinancials `json:"financials"`
	EffectiveStatus InvoiceStatus     `json:"effectiveStatus"`
}
