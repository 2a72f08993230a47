package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"siteworks/models"
	"siteworks/utils"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *DefaultBillingService) view(inv models.Invoice) models.InvoiceView {
	return models.InvoiceView{
		Invoice:         inv,
		Financials:      ComputeInvoiceFinancials(&inv),
		EffectiveStatus: ResolveInvoiceStatus(&inv, s.now()),
	}
}

func (s *DefaultBillingService) viewPtr(inv *models.Invoice) *models.InvoiceView {
	v := s.view(*inv)
	return &v
}

// CreateInvoice creates a draft invoice for a project. Tax and retention
// rates fall back to the project's defaults when the payload omits them.
func (s *DefaultBillingService) CreateInvoice(ctx context.Context, req models.CreateInvoiceRequest) (*models.InvoiceView, error) {
	logger := utils.GetLogger()

	project, err := s.Projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	taxRate := project.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	retentionRate := project.DefaultRetentionRate
	if req.RetentionRate != nil {
		retentionRate = *req.RetentionRate
	}

	inv := models.Invoice{
		InvoiceNumber: generateInvoiceNumber(s.now()),
		ClientID:      req.ClientID,
		ProjectID:     req.ProjectID,
		Status:        models.InvoiceStatusDraft,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		TaxRate:       taxRate,
		RetentionRate: retentionRate,
		LineItems:     buildLineItems(req.LineItems),
		Notes:         req.Notes,
	}

	created, err := s.Repo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	logger.Info("Invoice created",
		zap.String("invoiceId", created.ID),
		zap.String("invoiceNumber", created.InvoiceNumber),
		zap.String("projectId", created.ProjectID))
	return s.viewPtr(created), nil
}

// GetInvoice returns the invoice with derived financials and status.
func (s *DefaultBillingService) GetInvoice(ctx context.Context, id string) (*models.InvoiceView, error) {
	inv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.viewPtr(inv), nil
}

// UpdateInvoice edits an invoice. Only drafts are editable; sent invoices
// change through payments and explicit transitions.
func (s *DefaultBillingService) UpdateInvoice(ctx context.Context, id string, req models.UpdateInvoiceRequest) (*models.InvoiceView, error) {
	inv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvoiceStatusDraft {
		return nil, fmt.Errorf("invoice %s is %s; only draft invoices can be edited", id, inv.Status)
	}

	if req.IssueDate != nil {
		inv.IssueDate = req.IssueDate
	}
	if req.DueDate != nil {
		inv.DueDate = req.DueDate
	}
	if req.TaxRate != nil {
		inv.TaxRate = *req.TaxRate
	}
	if req.RetentionRate != nil {
		inv.RetentionRate = *req.RetentionRate
	}
	if req.LineItems != nil {
		inv.LineItems = buildLineItems(*req.LineItems)
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}

	updated, err := s.Repo.Update(ctx, *inv)
	if err != nil {
		return nil, err
	}
	return s.viewPtr(updated), nil
}

// DeleteInvoice removes a draft invoice. Anything past draft is kept for
// the audit trail and can only be cancelled.
func (s *DefaultBillingService) DeleteInvoice(ctx context.Context, id string) error {
	inv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != models.InvoiceStatusDraft {
		return fmt.Errorf("invoice %s is %s; only draft invoices can be deleted", id, inv.Status)
	}
	return s.Repo.DeleteByID(ctx, id)
}

// ListInvoices lists invoices, optionally narrowed by project, client,
// and derived status.
func (s *DefaultBillingService) ListInvoices(ctx context.Context, filter models.InvoiceFilter) ([]models.InvoiceView, error) {
	var (
		invoices []models.Invoice
		err      error
	)
	switch {
	case filter.ProjectID != "":
		invoices, err = s.Repo.ListByProject(ctx, filter.ProjectID)
	case filter.ClientID != "":
		invoices, err = s.Repo.ListByClient(ctx, filter.ClientID)
	default:
		invoices, err = s.Repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	views := lo.Map(invoices, func(inv models.Invoice, _ int) models.InvoiceView {
		return s.view(inv)
	})
	if filter.Status != "" {
		views = lo.Filter(views, func(v models.InvoiceView, _ int) bool {
			return v.EffectiveStatus == filter.Status
		})
	}
	return views, nil
}

// RecordPayment appends a settlement to the invoice's payment ledger.
// Stored totals are deliberately left untouched; the derivation engine
// reconciles them at read time.
func (s *DefaultBillingService) RecordPayment(ctx context.Context, invoiceID string, req models.RecordPaymentRequest) (*models.InvoiceView, error) {
	logger := utils.GetLogger()

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if !req.Method.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", req.Method)
	}

	inv, err := s.Repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == models.InvoiceStatusCancelled {
		return nil, fmt.Errorf("invoice %s is cancelled and cannot receive payments", invoiceID)
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}
	payment := models.InvoicePayment{
		ID:        uuid.New().String(),
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Date:      date,
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	if err := s.Repo.AppendPayment(ctx, invoiceID, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment recorded",
		zap.String("invoiceId", invoiceID),
		zap.String("paymentId", payment.ID),
		zap.String("amount", payment.Amount.String()),
		zap.String("method", string(payment.Method)))

	reloaded, err := s.Repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.viewPtr(reloaded), nil
}

// MarkSent transitions a draft invoice to sent. The issue date is stamped
// if the draft never had one.
func (s *DefaultBillingService) MarkSent(ctx context.Context, id string) (*models.InvoiceView, error) {
	inv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvoiceStatusDraft {
		return nil, fmt.Errorf("invoice %s is %s; only draft invoices can be sent", id, inv.Status)
	}

	if inv.IssueDate == nil {
		issued := s.now()
		inv.IssueDate = &issued
	}
	inv.Status = models.InvoiceStatusSent
	updated, err := s.Repo.Update(ctx, *inv)
	if err != nil {
		return nil, err
	}
	return s.viewPtr(updated), nil
}

// CancelInvoice voids an invoice. Paid invoices stay paid.
func (s *DefaultBillingService) CancelInvoice(ctx context.Context, id string) (*models.InvoiceView, error) {
	inv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == models.InvoiceStatusPaid {
		return nil, fmt.Errorf("invoice %s is already paid and cannot be cancelled", id)
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.InvoiceStatusCancelled); err != nil {
		return nil, err
	}
	reloaded, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.viewPtr(reloaded), nil
}

func buildLineItems(inputs []models.LineItemInput) []models.InvoiceLineItem {
	items := make([]models.InvoiceLineItem, 0, len(inputs))
	for _, in := range inputs {
		qty := in.Quantity
		price := in.UnitPrice
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		if price.IsNegative() {
			price = decimal.Zero
		}
		items = append(items, models.InvoiceLineItem{
			ID:          uuid.New().String(),
			Description: in.Description,
			Quantity:    qty,
			UnitPrice:   price,
			Amount:      qty.Mul(price),
		})
	}
	return items
}

func generateInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("INV-%d-%s", now.Year(), suffix)
}
