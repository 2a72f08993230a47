package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"siteworks/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	invoices map[string]models.Invoice
}

func newFakeInvoiceRepo(seed ...models.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: make(map[string]models.Invoice)}
	for _, inv := range seed {
		r.invoices[inv.ID] = inv
	}
	return r
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv models.Invoice) (*models.Invoice, error) {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	r.invoices[inv.ID] = inv
	return &inv, nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice %s not found", id)
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv models.Invoice) (*models.Invoice, error) {
	if _, ok := r.invoices[inv.ID]; !ok {
		return nil, fmt.Errorf("invoice %s not found", inv.ID)
	}
	inv.UpdatedAt = time.Now()
	r.invoices[inv.ID] = inv
	return &inv, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, id string, status models.InvoiceStatus) error {
	inv, ok := r.invoices[id]
	if !ok {
		return fmt.Errorf("invoice %s not found", id)
	}
	inv.Status = status
	r.invoices[id] = inv
	return nil
}

func (r *fakeInvoiceRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.invoices[id]; !ok {
		return fmt.Errorf("invoice %s not found", id)
	}
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context) ([]models.Invoice, error) {
	out := make([]models.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByProject(ctx context.Context, projectID string) ([]models.Invoice, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, inv := range all {
		if inv.ProjectID == projectID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByClient(ctx context.Context, clientID string) ([]models.Invoice, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, inv := range all {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) AppendPayment(_ context.Context, invoiceID string, payment models.InvoicePayment) error {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return fmt.Errorf("invoice %s not found", invoiceID)
	}
	inv.Payments = append(inv.Payments, payment)
	r.invoices[invoiceID] = inv
	return nil
}

type fakeProjectRepo struct {
	projects map[string]models.Project
}

func (r *fakeProjectRepo) Create(_ context.Context, p models.Project) (*models.Project, error) {
	r.projects[p.ID] = p
	return &p, nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s not found", id)
	}
	return &p, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p models.Project) (*models.Project, error) {
	r.projects[p.ID] = p
	return &p, nil
}

func (r *fakeProjectRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) List(_ context.Context) ([]models.Project, error) { return nil, nil }

func (r *fakeProjectRepo) ListByClient(_ context.Context, _ string) ([]models.Project, error) {
	return nil, nil
}

func newService(now time.Time, seed ...models.Invoice) (*DefaultBillingService, *fakeInvoiceRepo) {
	repo := newFakeInvoiceRepo(seed...)
	projects := &fakeProjectRepo{projects: map[string]models.Project{
		"proj-1": {
			ID:                   "proj-1",
			Name:                 "Riverside Extension",
			DefaultTaxRate:       dec("0.2"),
			DefaultRetentionRate: dec("0.05"),
		},
	}}
	return &DefaultBillingService{
		Repo:     repo,
		Projects: projects,
		Now:      func() time.Time { return now },
	}, repo
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestCreateInvoiceUsesProjectDefaultRates(t *testing.T) {
	svc, _ := newService(testNow)

	view, err := svc.CreateInvoice(context.Background(), models.CreateInvoiceRequest{
		ClientID:  "client-1",
		ProjectID: "proj-1",
		LineItems: []models.LineItemInput{
			{Description: "Groundworks", Quantity: dec("10"), UnitPrice: dec("100")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusDraft, view.Status)
	assertEq(t, "0.2", view.TaxRate, "taxRate")
	assertEq(t, "0.05", view.RetentionRate, "retentionRate")
	assertEq(t, "1000", view.Financials.Subtotal, "subtotal")
	assertEq(t, "1150", view.Financials.Total, "total")
	assert.Regexp(t, `^INV-2025-[0-9A-F]{8}$`, view.InvoiceNumber)
}

func TestCreateInvoiceExplicitRatesWin(t *testing.T) {
	svc, _ := newService(testNow)

	view, err := svc.CreateInvoice(context.Background(), models.CreateInvoiceRequest{
		ClientID:      "client-1",
		ProjectID:     "proj-1",
		TaxRate:       decPtr("0"),
		RetentionRate: decPtr("0.1"),
		LineItems: []models.LineItemInput{
			{Description: "Scaffolding", Quantity: dec("1"), UnitPrice: dec("500")},
		},
	})
	require.NoError(t, err)

	assertEq(t, "0", view.Financials.TaxAmount, "taxAmount")
	assertEq(t, "50", view.Financials.RetentionAmount, "retentionAmount")
	assertEq(t, "450", view.Financials.Total, "total")
}

func TestCreateInvoiceNegativeInputsClamped(t *testing.T) {
	svc, _ := newService(testNow)

	view, err := svc.CreateInvoice(context.Background(), models.CreateInvoiceRequest{
		ClientID:  "client-1",
		ProjectID: "proj-1",
		LineItems: []models.LineItemInput{
			{Description: "Credit line", Quantity: dec("-3"), UnitPrice: dec("100")},
			{Description: "Materials", Quantity: dec("2"), UnitPrice: dec("-50")},
		},
	})
	require.NoError(t, err)

	for _, item := range view.LineItems {
		assert.False(t, item.Quantity.IsNegative())
		assert.False(t, item.UnitPrice.IsNegative())
	}
	assertEq(t, "0", view.Financials.Subtotal, "subtotal")
}

func TestUpdateInvoiceOnlyDrafts(t *testing.T) {
	svc, _ := newService(testNow,
		models.Invoice{ID: "inv-sent", Status: models.InvoiceStatusSent},
	)

	notes := "revised"
	_, err := svc.UpdateInvoice(context.Background(), "inv-sent", models.UpdateInvoiceRequest{Notes: &notes})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only draft invoices")
}

func TestDeleteInvoiceOnlyDrafts(t *testing.T) {
	svc, repo := newService(testNow,
		models.Invoice{ID: "inv-draft", Status: models.InvoiceStatusDraft},
		models.Invoice{ID: "inv-paid", Status: models.InvoiceStatusPaid},
	)

	require.NoError(t, svc.DeleteInvoice(context.Background(), "inv-draft"))
	assert.NotContains(t, repo.invoices, "inv-draft")

	err := svc.DeleteInvoice(context.Background(), "inv-paid")
	require.Error(t, err)
	assert.Contains(t, repo.invoices, "inv-paid")
}

func TestListInvoicesFiltersOnDerivedStatus(t *testing.T) {
	due := testNow.Add(-48 * time.Hour)
	svc, _ := newService(testNow,
		// Stored sent but past due with an open balance: derives to overdue.
		models.Invoice{
			ID: "inv-late", ProjectID: "proj-1", Status: models.InvoiceStatusSent,
			DueDate:   &due,
			LineItems: []models.InvoiceLineItem{{Quantity: dec("1"), UnitPrice: dec("100")}},
		},
		// Stored sent and fully settled by ledger: derives to paid.
		models.Invoice{
			ID: "inv-settled", ProjectID: "proj-1", Status: models.InvoiceStatusSent,
			LineItems: []models.InvoiceLineItem{{Quantity: dec("1"), UnitPrice: dec("100")}},
			Payments:  []models.InvoicePayment{{Amount: dec("100")}},
		},
	)

	overdue, err := svc.ListInvoices(context.Background(), models.InvoiceFilter{
		ProjectID: "proj-1",
		Status:    models.InvoiceStatusOverdue,
	})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "inv-late", overdue[0].ID)

	// Neither invoice matches its stored status anymore.
	sent, err := svc.ListInvoices(context.Background(), models.InvoiceFilter{
		ProjectID: "proj-1",
		Status:    models.InvoiceStatusSent,
	})
	require.NoError(t, err)
	assert.Empty(t, sent)
}

func TestRecordPaymentAppendsAndDerives(t *testing.T) {
	svc, repo := newService(testNow,
		models.Invoice{
			ID: "inv-1", Status: models.InvoiceStatusSent,
			LineItems: []models.InvoiceLineItem{{Quantity: dec("2"), UnitPrice: dec("75")}},
		},
	)

	view, err := svc.RecordPayment(context.Background(), "inv-1", models.RecordPaymentRequest{
		Amount: dec("100"),
		Method: models.PaymentMethodBankTransfer,
	})
	require.NoError(t, err)

	assertEq(t, "100", view.Financials.AmountPaid, "amountPaid")
	assertEq(t, "50", view.Financials.Balance, "balance")
	assert.Equal(t, models.InvoiceStatusSent, view.EffectiveStatus)

	// Stored totals stay untouched; only the ledger grew.
	stored := repo.invoices["inv-1"]
	assert.True(t, stored.AmountPaid.IsZero())
	require.Len(t, stored.Payments, 1)
	assert.Equal(t, testNow, stored.Payments[0].Date)

	view, err = svc.RecordPayment(context.Background(), "inv-1", models.RecordPaymentRequest{
		Amount: dec("50"),
		Method: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assertEq(t, "0", view.Financials.Balance, "balance")
	assert.Equal(t, models.InvoiceStatusPaid, view.EffectiveStatus)
}

func TestRecordPaymentValidation(t *testing.T) {
	svc, _ := newService(testNow,
		models.Invoice{ID: "inv-1", Status: models.InvoiceStatusSent},
		models.Invoice{ID: "inv-void", Status: models.InvoiceStatusCancelled},
	)

	_, err := svc.RecordPayment(context.Background(), "inv-1", models.RecordPaymentRequest{
		Amount: dec("-10"),
		Method: models.PaymentMethodCash,
	})
	assert.Error(t, err)

	_, err = svc.RecordPayment(context.Background(), "inv-1", models.RecordPaymentRequest{
		Amount: dec("10"),
		Method: "barter",
	})
	assert.Error(t, err)

	_, err = svc.RecordPayment(context.Background(), "inv-void", models.RecordPaymentRequest{
		Amount: dec("10"),
		Method: models.PaymentMethodCash,
	})
	assert.Error(t, err)
}

func TestMarkSentStampsIssueDate(t *testing.T) {
	svc, _ := newService(testNow,
		models.Invoice{ID: "inv-1", Status: models.InvoiceStatusDraft},
	)

	view, err := svc.MarkSent(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, view.Status)
	require.NotNil(t, view.IssueDate)
	assert.Equal(t, testNow, *view.IssueDate)

	// Sending twice is rejected.
	_, err = svc.MarkSent(context.Background(), "inv-1")
	assert.Error(t, err)
}

func TestCancelInvoiceRules(t *testing.T) {
	svc, _ := newService(testNow,
		models.Invoice{ID: "inv-1", Status: models.InvoiceStatusSent},
		models.Invoice{ID: "inv-paid", Status: models.InvoiceStatusPaid},
	)

	view, err := svc.CancelInvoice(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, view.Status)
	assert.Equal(t, models.InvoiceStatusCancelled, view.EffectiveStatus)

	_, err = svc.CancelInvoice(context.Background(), "inv-paid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already paid")
}

func TestProjectFinancialsAggregatesDerivedFigures(t *testing.T) {
	due := testNow.Add(-24 * time.Hour)
	svc, _ := newService(testNow,
		models.Invoice{
			ID: "inv-open", ProjectID: "proj-1", Status: models.InvoiceStatusSent,
			RetentionRate: dec("0.1"),
			LineItems:     []models.InvoiceLineItem{{Quantity: dec("1"), UnitPrice: dec("1000")}},
			Payments:      []models.InvoicePayment{{Amount: dec("400")}},
		},
		models.Invoice{
			ID: "inv-late", ProjectID: "proj-1", Status: models.InvoiceStatusSent,
			DueDate:   &due,
			LineItems: []models.InvoiceLineItem{{Quantity: dec("1"), UnitPrice: dec("500")}},
		},
		models.Invoice{
			ID: "inv-done", ProjectID: "proj-1", Status: models.InvoiceStatusPaid,
			LineItems: []models.InvoiceLineItem{{Quantity: dec("1"), UnitPrice: dec("200")}},
			Payments:  []models.InvoicePayment{{Amount: dec("200")}},
		},
		models.Invoice{ID: "inv-draft", ProjectID: "proj-1", Status: models.InvoiceStatusDraft,
			LineItems: []models.InvoiceLineItem{{Quantity: dec("1"), UnitPrice: dec("9999")}},
		},
		models.Invoice{ID: "inv-void", ProjectID: "proj-1", Status: models.InvoiceStatusCancelled},
		models.Invoice{ID: "inv-other", ProjectID: "proj-2", Status: models.InvoiceStatusSent,
			LineItems: []models.InvoiceLineItem{{Quantity: dec("1"), UnitPrice: dec("777")}},
		},
	)

	summary, err := svc.ProjectFinancials(context.Background(), "proj-1")
	require.NoError(t, err)

	assert.Equal(t, 5, summary.InvoiceCount)
	assert.Equal(t, 1, summary.DraftCount)
	assert.Equal(t, 1, summary.PaidCount)
	assert.Equal(t, 1, summary.OverdueCount)

	// inv-open subtotals 1000 with 10% retention held back, so its
	// payable total is 900.
	assertEq(t, "1600", summary.TotalInvoiced, "totalInvoiced")
	assertEq(t, "600", summary.TotalCollected, "totalCollected")
	assertEq(t, "1000", summary.TotalOutstanding, "totalOutstanding")
	assertEq(t, "100", summary.TotalRetained, "totalRetained")
	assertEq(t, "500", summary.OverdueBalance, "overdueBalance")
}
