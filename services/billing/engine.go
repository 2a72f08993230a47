package billing

import (
	"time"

	"siteworks/models"

	"github.com/shopspring/decimal"
)

// ComputeInvoiceFinancials derives subtotal, tax, retention, total, amount
// paid, and outstanding balance from an invoice snapshot.
//
// The snapshot carries three sources of truth that can disagree: the line
// items, the payment ledger, and totals persisted at some earlier point.
// When line items exist they are authoritative and every total is
// recomputed from them; otherwise the stored totals are trusted where
// present. Amount paid is reconciled as the maximum of every available
// candidate — the stored amountPaid, the summed payment ledger, and (when
// a stored balance exists without line items) the amount implied by that
// balance — because any single source may under-report after a migration.
// The balance never goes negative: overpayment clamps to zero.
//
// The function is pure, does no I/O, and never panics on malformed input;
// the repository layer has already coerced every numeric field.
func ComputeInvoiceFinancials(inv *models.Invoice) models.InvoiceFinancials {
	hasLineItems := len(inv.LineItems) > 0

	subtotal := inv.Subtotal
	if hasLineItems {
		subtotal = decimal.Zero
		for _, item := range inv.LineItems {
			subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
		}
	}

	// With line items present the stored tax/retention amounts are ignored
	// even if set; the items are the source of truth.
	taxAmount := subtotal.Mul(inv.TaxRate)
	if !hasLineItems && !inv.TaxAmount.IsZero() {
		taxAmount = inv.TaxAmount
	}

	retentionAmount := subtotal.Mul(inv.RetentionRate)
	if !hasLineItems && !inv.RetentionAmount.IsZero() {
		retentionAmount = inv.RetentionAmount
	}

	total := subtotal.Add(taxAmount).Sub(retentionAmount)
	if !hasLineItems && !inv.Total.IsZero() {
		total = inv.Total
	}

	paidFromPayments := decimal.Zero
	for _, p := range inv.Payments {
		paidFromPayments = paidFromPayments.Add(p.Amount)
	}

	amountPaid := decimal.Max(inv.AmountPaid, paidFromPayments)
	if !hasLineItems && inv.Balance != nil {
		// Infer what must have been collected to leave the stored balance.
		inferred := decimal.Max(decimal.Zero, total.Sub(*inv.Balance))
		amountPaid = decimal.Max(amountPaid, inferred)
	}
	if amountPaid.IsNegative() {
		amountPaid = decimal.Zero
	}

	balance := decimal.Max(decimal.Zero, total.Sub(amountPaid))
	if !hasLineItems && inv.Balance != nil {
		// Trust the stored balance, but never let it exceed the total or
		// drop below zero.
		balance = decimal.Max(decimal.Zero, decimal.Min(*inv.Balance, decimal.Max(decimal.Zero, total)))
	}

	return models.InvoiceFinancials{
		Subtotal:        subtotal,
		TaxAmount:       taxAmount,
		RetentionAmount: retentionAmount,
		Total:           total,
		AmountPaid:      amountPaid,
		Balance:         balance,
		Payments:        inv.Payments,
	}
}

// ResolveInvoiceStatus derives the effective lifecycle status of an invoice
// for display, given a reference time. The stored status is not rewritten:
// cancelled and draft pass through untouched, an explicit paid marking is
// trusted even when the balance math disagrees, a zero balance always reads
// as paid, and a sent invoice past its due date reads as overdue. An absent
// due date skips the overdue derivation.
func ResolveInvoiceStatus(inv *models.Invoice, now time.Time) models.InvoiceStatus {
	fin := ComputeInvoiceFinancials(inv)

	switch inv.Status {
	case models.InvoiceStatusCancelled:
		return models.InvoiceStatusCancelled
	case models.InvoiceStatusDraft:
		return models.InvoiceStatusDraft
	case models.InvoiceStatusPaid:
		return models.InvoiceStatusPaid
	}

	if fin.Balance.LessThanOrEqual(decimal.Zero) {
		return models.InvoiceStatusPaid
	}

	if inv.Status == models.InvoiceStatusSent || inv.Status == models.InvoiceStatusOverdue {
		if inv.DueDate != nil && inv.DueDate.Before(now) {
			return models.InvoiceStatusOverdue
		}
	}

	return inv.Status
}
