package billing

import (
	"context"

	"siteworks/models"

	"github.com/shopspring/decimal"
)

// ProjectFinancialSummary aggregates derived invoice figures for a
// single project. Everything here is computed from line items and
// payment records, never from stored totals alone, so the numbers stay
// honest even when individual invoice documents carry stale fields.
type ProjectFinancialSummary struct {
	ProjectID        string          `json:"projectId"`
	InvoiceCount     int             `json:"invoiceCount"`
	TotalInvoiced    decimal.Decimal `json:"totalInvoiced"`
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalRetained    decimal.Decimal `json:"totalRetained"`
	OverdueCount     int             `json:"overdueCount"`
	OverdueBalance   decimal.Decimal `json:"overdueBalance"`
	DraftCount       int             `json:"draftCount"`
	PaidCount        int             `json:"paidCount"`
}

// ProjectFinancials runs every invoice in the project through the
// derivation engine and folds the results into a summary. Drafts and
// cancelled invoices are counted but excluded from the money totals.
func (s *DefaultBillingService) ProjectFinancials(ctx context.Context, projectID string) (*ProjectFinancialSummary, error) {
	invoices, err := s.Repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary := &ProjectFinancialSummary{ProjectID: projectID}
	now := s.now()
	for _, inv := range invoices {
		summary.InvoiceCount++

		status := ResolveInvoiceStatus(&inv, now)
		switch status {
		case models.InvoiceStatusDraft:
			summary.DraftCount++
			continue
		case models.InvoiceStatusCancelled:
			continue
		}

		fin := ComputeInvoiceFinancials(&inv)
		summary.TotalInvoiced = summary.TotalInvoiced.Add(fin.Total)
		summary.TotalCollected = summary.TotalCollected.Add(fin.AmountPaid)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(fin.Balance)
		summary.TotalRetained = summary.TotalRetained.Add(fin.RetentionAmount)

		switch status {
		case models.InvoiceStatusOverdue:
			summary.OverdueCount++
			summary.OverdueBalance = summary.OverdueBalance.Add(fin.Balance)
		case models.InvoiceStatusPaid:
			summary.PaidCount++
		}
	}
	return summary, nil
}
