package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment against an invoice was settled.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCreditCard,
		PaymentMethodCash, PaymentMethodCheque:
		return true
	}
	return false
}

// InvoicePayment is one settlement event against an invoice. Payments are
// append-only; nothing in the system deletes or mutates them.
type InvoicePayment struct {
	ID        string          `bson:"id" json:"id"`
	InvoiceID string          `bson:"invoiceId" json:"invoiceId"`
	Amount    decimal.Decimal `bson:"amount" json:"amount"`
	Date      time.Time       `bson:"date" json:"date"`
	Method    PaymentMethod   `bson:"method" json:"method"`
	Reference string          `bson:"reference,omitempty" json:"reference,omitempty"`
	Notes     string          `bson:"notes,omitempty" json:"notes,omitempty"`
}

// RecordPaymentRequest is the payload for recording a payment.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      *time.Time      `json:"date,omitempty"`
	Method    PaymentMethod   `json:"method" binding:"required"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}
