package invoiceRepo

import (
	"testing"
	"time"

	"siteworks/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToModel_LegacyAliases(t *testing.T) {
	doc := invoiceDoc{
		ID:            "inv-1",
		InvoiceNumber: "INV-2025-001",
		Status:        "SENT",
		IssuedAt:      "2025-02-01T00:00:00Z",
		DueAt:         "2025-03-01T00:00:00Z",
		LineItems: []lineItemDoc{
			// pre-migration item: price under "rate", quantity as a string
			{ID: "li-1", Description: "Groundworks", Quantity: "2", Rate: 100.0},
			{ID: "li-2", Description: "Scaffolding", Quantity: 1, UnitPrice: int64(50)},
		},
	}

	inv := doc.toModel()

	assert.Equal(t, models.InvoiceStatusSent, inv.Status)
	require.NotNil(t, inv.IssueDate)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *inv.IssueDate)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *inv.DueDate)

	require.Len(t, inv.LineItems, 2)
	assert.True(t, inv.LineItems[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, inv.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, inv.LineItems[1].UnitPrice.Equal(decimal.NewFromInt(50)))
}

func TestToModel_NewFieldNameWinsOverAlias(t *testing.T) {
	doc := invoiceDoc{
		ID:      "inv-2",
		Status:  "sent",
		DueDate: "2025-05-01T00:00:00Z",
		DueAt:   "2025-04-01T00:00:00Z",
		LineItems: []lineItemDoc{
			{ID: "li-1", Quantity: 1, UnitPrice: 80.0, Rate: 999.0},
		},
	}

	inv := doc.toModel()

	require.NotNil(t, inv.DueDate)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), *inv.DueDate)
	assert.True(t, inv.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(80)))
}

func TestToModel_MalformedNumericsBecomeZero(t *testing.T) {
	doc := invoiceDoc{
		ID:        "inv-3",
		Status:    "sent",
		Subtotal:  "not a number",
		TaxAmount: nil,
		Total:     map[string]any{"weird": true},
		Balance:   "garbage",
		LineItems: []lineItemDoc{
			{ID: "li-1", Quantity: "oops", UnitPrice: "1e3"},
		},
		Payments: []paymentDoc{
			{ID: "p-1", Amount: "abc", Date: "never"},
		},
	}

	inv := doc.toModel()

	assert.True(t, inv.Subtotal.IsZero())
	assert.True(t, inv.TaxAmount.IsZero())
	assert.True(t, inv.Total.IsZero())
	assert.Nil(t, inv.Balance, "unparseable stored balance must read as absent")
	assert.True(t, inv.LineItems[0].Quantity.IsZero())
	assert.True(t, inv.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, inv.Payments[0].Amount.IsZero())
	assert.True(t, inv.Payments[0].Date.IsZero())
}

func TestToModel_StoredBalanceZeroIsPresent(t *testing.T) {
	doc := invoiceDoc{ID: "inv-4", Status: "sent", Balance: 0.0}
	inv := doc.toModel()
	require.NotNil(t, inv.Balance)
	assert.True(t, inv.Balance.IsZero())
}

func TestToDocRoundTrip(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	bal := decimal.RequireFromString("125.50")
	inv := models.Invoice{
		ID:            "inv-5",
		InvoiceNumber: "INV-2025-002",
		Status:        models.InvoiceStatusSent,
		DueDate:       &due,
		TaxRate:       decimal.RequireFromString("0.2"),
		Balance:       &bal,
		LineItems: []models.InvoiceLineItem{
			{ID: "li-1", Description: "Roofing", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("149.99")},
		},
	}

	doc := toDoc(inv)

	assert.Equal(t, "0.2", doc["taxRate"])
	assert.Equal(t, "125.5", doc["balance"])
	assert.Equal(t, "sent", doc["status"])

	items, ok := doc["lineItems"].([]bson.M)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "149.99", items[0]["unitPrice"])
	assert.Equal(t, "449.97", items[0]["amount"])
}
