package billing

import (
	"testing"
	"time"

	"siteworks/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func item(qty, price string) models.InvoiceLineItem {
	return models.InvoiceLineItem{Quantity: dec(qty), UnitPrice: dec(price)}
}

func payment(amount string) models.InvoicePayment {
	return models.InvoicePayment{Amount: dec(amount), Method: models.PaymentMethodBankTransfer}
}

func assertEq(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s = %s, want %s", field, got, want)
}

func TestComputeInvoiceFinancials_LineItemsAuthoritative(t *testing.T) {
	// Stored totals are stale garbage; line items must win across the board.
	inv := &models.Invoice{
		Status:        models.InvoiceStatusSent,
		TaxRate:       dec("0.2"),
		RetentionRate: dec("0.1"),
		LineItems: []models.InvoiceLineItem{
			item("2", "100"),
			item("1", "50"),
		},
		Payments:   []models.InvoicePayment{payment("60"), payment("90")},
		AmountPaid: dec("100"),
		// stale persisted aggregates
		Subtotal:        dec("999"),
		TaxAmount:       dec("999"),
		RetentionAmount: dec("999"),
		Total:           dec("999"),
	}

	fin := ComputeInvoiceFinancials(inv)

	assertEq(t, "250", fin.Subtotal, "subtotal")
	assertEq(t, "50", fin.TaxAmount, "taxAmount")
	assertEq(t, "25", fin.RetentionAmount, "retentionAmount")
	assertEq(t, "275", fin.Total, "total")
	// max(stored 100, summed 150)
	assertEq(t, "150", fin.AmountPaid, "amountPaid")
	assertEq(t, "125", fin.Balance, "balance")
}

func TestComputeInvoiceFinancials_OverpaymentClampsToZero(t *testing.T) {
	inv := &models.Invoice{
		Status:    models.InvoiceStatusSent,
		LineItems: []models.InvoiceLineItem{item("1", "50")},
		Payments:  []models.InvoicePayment{payment("60")},
	}

	fin := ComputeInvoiceFinancials(inv)

	assertEq(t, "50", fin.Total, "total")
	assertEq(t, "60", fin.AmountPaid, "amountPaid")
	assertEq(t, "0", fin.Balance, "balance")
	assert.False(t, fin.Balance.IsNegative())
}

func TestComputeInvoiceFinancials_StoredAmountPaidPrecedence(t *testing.T) {
	// A stored amountPaid larger than the summed ledger wins.
	inv := &models.Invoice{
		LineItems:  []models.InvoiceLineItem{item("1", "200")},
		Payments:   []models.InvoicePayment{payment("50")},
		AmountPaid: dec("120"),
	}

	fin := ComputeInvoiceFinancials(inv)

	assertEq(t, "120", fin.AmountPaid, "amountPaid")
	assertEq(t, "80", fin.Balance, "balance")
}

func TestComputeInvoiceFinancials_FallbackToStoredTotals(t *testing.T) {
	inv := &models.Invoice{
		Status:          models.InvoiceStatusSent,
		Subtotal:        dec("500"),
		TaxAmount:       dec("100"),
		RetentionAmount: dec("50"),
		Total:           dec("550"),
	}

	fin := ComputeInvoiceFinancials(inv)

	assertEq(t, "500", fin.Subtotal, "subtotal")
	assertEq(t, "100", fin.TaxAmount, "taxAmount")
	assertEq(t, "50", fin.RetentionAmount, "retentionAmount")
	assertEq(t, "550", fin.Total, "total")
	assertEq(t, "550", fin.Balance, "balance")
}

func TestComputeInvoiceFinancials_StoredZerosRecomputeFromRates(t *testing.T) {
	// No line items and no stored tax amount: tax falls back to the stored
	// subtotal times the rate, and the total is rebuilt from the parts.
	inv := &models.Invoice{
		Subtotal:      dec("200"),
		TaxRate:       dec("0.1"),
		RetentionRate: dec("0.05"),
	}

	fin := ComputeInvoiceFinancials(inv)

	assertEq(t, "20", fin.TaxAmount, "taxAmount")
	assertEq(t, "10", fin.RetentionAmount, "retentionAmount")
	assertEq(t, "210", fin.Total, "total")
}

func TestComputeInvoiceFinancials_StoredBalanceInference(t *testing.T) {
	tests := []struct {
		name           string
		total          string
		storedBalance  string
		wantAmountPaid string
		wantBalance    string
	}{
		{"balance implies payment", "100", "40", "60", "40"},
		{"stored balance capped at total", "100", "150", "0", "100"},
		{"negative stored balance clamps", "100", "-20", "120", "0"},
		{"zero stored balance means fully paid", "100", "0", "100", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &models.Invoice{
				Total:   dec(tt.total),
				Balance: decPtr(tt.storedBalance),
			}

			fin := ComputeInvoiceFinancials(inv)

			assertEq(t, tt.wantAmountPaid, fin.AmountPaid, "amountPaid")
			assertEq(t, tt.wantBalance, fin.Balance, "balance")
			assert.False(t, fin.Balance.IsNegative())
		})
	}
}

func TestComputeInvoiceFinancials_StoredBalanceIgnoredWithLineItems(t *testing.T) {
	// Line items present: the stored balance is not trusted, the computed
	// one wins.
	inv := &models.Invoice{
		LineItems: []models.InvoiceLineItem{item("1", "100")},
		Payments:  []models.InvoicePayment{payment("30")},
		Balance:   decPtr("5"),
	}

	fin := ComputeInvoiceFinancials(inv)

	assertEq(t, "70", fin.Balance, "balance")
}

func TestComputeInvoiceFinancials_EmptyInvoice(t *testing.T) {
	fin := ComputeInvoiceFinancials(&models.Invoice{})

	assertEq(t, "0", fin.Subtotal, "subtotal")
	assertEq(t, "0", fin.TaxAmount, "taxAmount")
	assertEq(t, "0", fin.RetentionAmount, "retentionAmount")
	assertEq(t, "0", fin.Total, "total")
	assertEq(t, "0", fin.AmountPaid, "amountPaid")
	assertEq(t, "0", fin.Balance, "balance")
}

func TestComputeInvoiceFinancials_ZeroQuantitiesAndPayments(t *testing.T) {
	inv := &models.Invoice{
		LineItems: []models.InvoiceLineItem{
			item("0", "100"),
			item("5", "0"),
			item("2", "25"),
		},
		Payments: []models.InvoicePayment{payment("0"), payment("10")},
	}

	fin := ComputeInvoiceFinancials(inv)

	assertEq(t, "50", fin.Subtotal, "subtotal")
	assertEq(t, "10", fin.AmountPaid, "amountPaid")
	assertEq(t, "40", fin.Balance, "balance")
}

func TestComputeInvoiceFinancials_PaymentsPassedThroughUnsorted(t *testing.T) {
	later := models.InvoicePayment{ID: "p2", Amount: dec("10"), Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	earlier := models.InvoicePayment{ID: "p1", Amount: dec("20"), Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	inv := &models.Invoice{
		LineItems: []models.InvoiceLineItem{item("1", "100")},
		Payments:  []models.InvoicePayment{later, earlier},
	}

	fin := ComputeInvoiceFinancials(inv)

	require.Len(t, fin.Payments, 2)
	assert.Equal(t, "p2", fin.Payments[0].ID, "payment order must be preserved")
	assert.Equal(t, "p1", fin.Payments[1].ID)
}

func TestResolveInvoiceStatus_TerminalAndInitialStates(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	pastDue := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		stored models.InvoiceStatus
		want   models.InvoiceStatus
	}{
		{"cancelled never overridden", models.InvoiceStatusCancelled, models.InvoiceStatusCancelled},
		{"draft never overridden", models.InvoiceStatusDraft, models.InvoiceStatusDraft},
		{"paid trusted", models.InvoiceStatusPaid, models.InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Past due with an open balance: would be overdue were the
			// stored status not protected.
			inv := &models.Invoice{
				Status:    tt.stored,
				DueDate:   &pastDue,
				LineItems: []models.InvoiceLineItem{item("1", "100")},
			}
			assert.Equal(t, tt.want, ResolveInvoiceStatus(inv, now))
		})
	}
}

func TestResolveInvoiceStatus_PaidWithoutPaymentRecords(t *testing.T) {
	// Explicit paid marking survives an empty ledger and zero amountPaid.
	inv := &models.Invoice{
		Status:    models.InvoiceStatusPaid,
		LineItems: []models.InvoiceLineItem{item("1", "100")},
	}
	assert.Equal(t, models.InvoiceStatusPaid, ResolveInvoiceStatus(inv, time.Now()))
}

func TestResolveInvoiceStatus_ZeroBalanceImpliesPaid(t *testing.T) {
	inv := &models.Invoice{
		Status:    models.InvoiceStatusSent,
		LineItems: []models.InvoiceLineItem{item("1", "50")},
		Payments:  []models.InvoicePayment{payment("50")},
	}
	assert.Equal(t, models.InvoiceStatusPaid, ResolveInvoiceStatus(inv, time.Now()))
}

func TestResolveInvoiceStatus_OverdueDerivation(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := &models.Invoice{
		Status:    models.InvoiceStatusSent,
		DueDate:   &due,
		LineItems: []models.InvoiceLineItem{item("1", "100")},
	}

	afterDue := due.Add(24 * time.Hour)
	beforeDue := due.Add(-24 * time.Hour)

	assert.Equal(t, models.InvoiceStatusOverdue, ResolveInvoiceStatus(inv, afterDue))
	assert.Equal(t, models.InvoiceStatusSent, ResolveInvoiceStatus(inv, beforeDue))
	// Strictly before: the due instant itself is not overdue.
	assert.Equal(t, models.InvoiceStatusSent, ResolveInvoiceStatus(inv, due))
}

func TestResolveInvoiceStatus_StoredOverdueBeforeDueDatePassesThrough(t *testing.T) {
	// A stored overdue with a future due date is left alone; the resolver
	// derives display status, it does not repair stored state.
	due := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	inv := &models.Invoice{
		Status:    models.InvoiceStatusOverdue,
		DueDate:   &due,
		LineItems: []models.InvoiceLineItem{item("1", "100")},
	}
	assert.Equal(t, models.InvoiceStatusOverdue, ResolveInvoiceStatus(inv, due.Add(-time.Hour)))
}

func TestResolveInvoiceStatus_NoDueDateSkipsOverdue(t *testing.T) {
	inv := &models.Invoice{
		Status:    models.InvoiceStatusSent,
		LineItems: []models.InvoiceLineItem{item("1", "100")},
	}
	assert.Equal(t, models.InvoiceStatusSent, ResolveInvoiceStatus(inv, time.Now()))
}

func TestResolveInvoiceStatus_BalanceNeverNegativeAcrossInputs(t *testing.T) {
	// Sweep a few adversarial shapes; the derived balance must stay >= 0.
	invoices := []*models.Invoice{
		{Payments: []models.InvoicePayment{payment("1000")}},
		{LineItems: []models.InvoiceLineItem{item("1", "10")}, AmountPaid: dec("9999")},
		{Total: dec("50"), Balance: decPtr("-10")},
		{Total: dec("-50")},
		{LineItems: []models.InvoiceLineItem{item("3", "33.33")}, Payments: []models.InvoicePayment{payment("99.99"), payment("0.01")}},
	}

	for _, inv := range invoices {
		fin := ComputeInvoiceFinancials(inv)
		assert.False(t, fin.Balance.IsNegative(), "balance %s must not be negative", fin.Balance)
	}
}
