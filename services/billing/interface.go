package billing

import (
	"context"
	"time"

	invoiceRepo "siteworks/database/repository/invoice"
	projectRepo "siteworks/database/repository/project"
	"siteworks/models"
)

// BillingService is the invoicing surface: CRUD for invoices, the
// append-only payment ledger, explicit status transitions, and Stripe
// payment intents for card settlement. Every read goes through the pure
// derivation engine so callers always see reconciled financials and the
// effective status.
type BillingService interface {
	CreateInvoice(ctx context.Context, req models.CreateInvoiceRequest) (*models.InvoiceView, error)
	GetInvoice(ctx context.Context, id string) (*models.InvoiceView, error)
	UpdateInvoice(ctx context.Context, id string, req models.UpdateInvoiceRequest) (*models.InvoiceView, error)
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context, filter models.InvoiceFilter) ([]models.InvoiceView, error)

	RecordPayment(ctx context.Context, invoiceID string, req models.RecordPaymentRequest) (*models.InvoiceView, error)
	MarkSent(ctx context.Context, id string) (*models.InvoiceView, error)
	CancelInvoice(ctx context.Context, id string) (*models.InvoiceView, error)

	CreatePaymentIntent(ctx context.Context, invoiceID string) (string, error)

	// ProjectFinancials aggregates derived invoice financials for a
	// project's dashboard and the AI forecast.
	ProjectFinancials(ctx context.Context, projectID string) (*ProjectFinancialSummary, error)
}

// DefaultBillingService is the production implementation.
type DefaultBillingService struct {
	Repo     invoiceRepo.InvoiceRepository
	Projects projectRepo.ProjectRepository
	// Now is injectable so status derivation is testable against a fixed
	// reference time. Nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBillingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
