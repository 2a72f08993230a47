package invoiceRepo

import (
	"strings"
	"time"

	"siteworks/models"
	"siteworks/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// invoiceDoc is the tolerant read shape for the invoices collection. The
// collection predates two schema migrations, so numeric fields can be
// doubles, ints, strings, or missing, and three fields exist under two
// names (unitPrice/rate, dueDate/dueAt, issueDate/issuedAt). All of that
// is resolved here, once, before the rest of the system sees the record.
type invoiceDoc struct {
	ID            string `bson:"id"`
	InvoiceNumber string `bson:"invoiceNumber"`
	ClientID      string `bson:"clientId"`
	ProjectID     string `bson:"projectId"`
	Status        string `bson:"status"`

	IssueDate any `bson:"issueDate"`
	IssuedAt  any `bson:"issuedAt"`
	DueDate   any `bson:"dueDate"`
	DueAt     any `bson:"dueAt"`

	TaxRate         any `bson:"taxRate"`
	RetentionRate   any `bson:"retentionRate"`
	Subtotal        any `bson:"subtotal"`
	TaxAmount       any `bson:"taxAmount"`
	RetentionAmount any `bson:"retentionAmount"`
	Total           any `bson:"total"`
	AmountPaid      any `bson:"amountPaid"`
	Balance         any `bson:"balance"`

	LineItems []lineItemDoc `bson:"lineItems"`
	Payments  []paymentDoc  `bson:"payments"`

	Notes     string    `bson:"notes"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type lineItemDoc struct {
	ID          string `bson:"id"`
	Description string `bson:"description"`
	Quantity    any    `bson:"quantity"`
	UnitPrice   any    `bson:"unitPrice"`
	Rate        any    `bson:"rate"`
	Amount      any    `bson:"amount"`
}

type paymentDoc struct {
	ID        string `bson:"id"`
	InvoiceID string `bson:"invoiceId"`
	Amount    any    `bson:"amount"`
	Date      any    `bson:"date"`
	Method    string `bson:"method"`
	Reference string `bson:"reference"`
	Notes     string `bson:"notes"`
}

func (d *invoiceDoc) toModel() models.Invoice {
	inv := models.Invoice{
		ID:            d.ID,
		InvoiceNumber: d.InvoiceNumber,
		ClientID:      d.ClientID,
		ProjectID:     d.ProjectID,
		Status:        models.InvoiceStatus(strings.ToLower(strings.TrimSpace(d.Status))),
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,

		TaxRate:         utils.ToDecimal(d.TaxRate),
		RetentionRate:   utils.ToDecimal(d.RetentionRate),
		Subtotal:        utils.ToDecimal(d.Subtotal),
		TaxAmount:       utils.ToDecimal(d.TaxAmount),
		RetentionAmount: utils.ToDecimal(d.RetentionAmount),
		Total:           utils.ToDecimal(d.Total),
		AmountPaid:      utils.ToDecimal(d.AmountPaid),
		Balance:         utils.ToDecimalPtr(d.Balance),
	}

	// Newer field name wins; the pre-migration alias fills the gap.
	inv.IssueDate = utils.ToTime(d.IssueDate)
	if inv.IssueDate == nil {
		inv.IssueDate = utils.ToTime(d.IssuedAt)
	}
	inv.DueDate = utils.ToTime(d.DueDate)
	if inv.DueDate == nil {
		inv.DueDate = utils.ToTime(d.DueAt)
	}

	inv.LineItems = make([]models.InvoiceLineItem, 0, len(d.LineItems))
	for _, item := range d.LineItems {
		unitPrice := item.UnitPrice
		if unitPrice == nil {
			unitPrice = item.Rate
		}
		inv.LineItems = append(inv.LineItems, models.InvoiceLineItem{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    utils.ToDecimal(item.Quantity),
			UnitPrice:   utils.ToDecimal(unitPrice),
			Amount:      utils.ToDecimal(item.Amount),
		})
	}

	inv.Payments = make([]models.InvoicePayment, 0, len(d.Payments))
	for _, p := range d.Payments {
		payment := models.InvoicePayment{
			ID:        p.ID,
			InvoiceID: p.InvoiceID,
			Amount:    utils.ToDecimal(p.Amount),
			Method:    models.PaymentMethod(strings.ToLower(strings.TrimSpace(p.Method))),
			Reference: p.Reference,
			Notes:     p.Notes,
		}
		if ts := utils.ToTime(p.Date); ts != nil {
			payment.Date = *ts
		}
		inv.Payments = append(inv.Payments, payment)
	}

	return inv
}

// toDoc builds the canonical write shape. Monetary values are persisted as
// strings to keep decimal precision; the read path parses them back.
func toDoc(inv models.Invoice) bson.M {
	lineItems := make([]bson.M, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		lineItems = append(lineItems, bson.M{
			"id":          item.ID,
			"description": item.Description,
			"quantity":    item.Quantity.String(),
			"unitPrice":   item.UnitPrice.String(),
			"amount":      item.Quantity.Mul(item.UnitPrice).String(),
		})
	}

	payments := make([]bson.M, 0, len(inv.Payments))
	for _, p := range inv.Payments {
		payments = append(payments, paymentToDoc(p))
	}

	doc := bson.M{
		"id":              inv.ID,
		"invoiceNumber":   inv.InvoiceNumber,
		"clientId":        inv.ClientID,
		"projectId":       inv.ProjectID,
		"status":          string(inv.Status),
		"taxRate":         inv.TaxRate.String(),
		"retentionRate":   inv.RetentionRate.String(),
		"subtotal":        inv.Subtotal.String(),
		"taxAmount":       inv.TaxAmount.String(),
		"retentionAmount": inv.RetentionAmount.String(),
		"total":           inv.Total.String(),
		"amountPaid":      inv.AmountPaid.String(),
		"lineItems":       lineItems,
		"payments":        payments,
		"notes":           inv.Notes,
		"createdAt":       inv.CreatedAt,
		"updatedAt":       inv.UpdatedAt,
	}
	if inv.Balance != nil {
		doc["balance"] = inv.Balance.String()
	}
	if inv.IssueDate != nil {
		doc["issueDate"] = *inv.IssueDate
	}
	if inv.DueDate != nil {
		doc["dueDate"] = *inv.DueDate
	}
	return doc
}

func paymentToDoc(p models.InvoicePayment) bson.M {
	return bson.M{
		"id":        p.ID,
		"invoiceId": p.InvoiceID,
		"amount":    p.Amount.String(),
		"date":      p.Date,
		"method":    string(p.Method),
		"reference": p.Reference,
		"notes":     p.Notes,
	}
}
