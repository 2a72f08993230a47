package billing

import (
	"context"
	"fmt"

	"siteworks/models"
	"siteworks/utils"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// CreatePaymentIntent creates a Stripe PaymentIntent for the invoice's
// outstanding balance and returns the client secret. Card settlements
// confirmed by the frontend land back as recorded payments through the
// regular payment endpoint.
func (s *DefaultBillingService) CreatePaymentIntent(ctx context.Context, invoiceID string) (string, error) {
	logger := utils.GetLogger()

	inv, err := s.Repo.GetByID(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	if inv.Status == models.InvoiceStatusCancelled || inv.Status == models.InvoiceStatusDraft {
		return "", fmt.Errorf("invoice %s is %s; payment intents require a sent invoice", invoiceID, inv.Status)
	}

	fin := ComputeInvoiceFinancials(inv)
	if !fin.Balance.IsPositive() {
		return "", fmt.Errorf("invoice %s has no outstanding balance", invoiceID)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(fin.Balance.Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Metadata: map[string]string{
			"invoiceId":     inv.ID,
			"invoiceNumber": inv.InvoiceNumber,
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	logger.Info("Payment intent created",
		zap.String("invoiceId", inv.ID),
		zap.String("paymentIntentId", pi.ID),
		zap.String("balance", fin.Balance.String()))
	return pi.ClientSecret, nil
}
