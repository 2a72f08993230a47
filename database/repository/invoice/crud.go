package invoiceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"siteworks/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new invoice. ID and timestamps are assigned here; the
// invoice number is assigned by the caller (billing service) so numbering
// policy stays out of the storage layer.
func (r *mongoInvoiceRepo) Create(ctx context.Context, inv models.Invoice) (*models.Invoice, error) {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, toDoc(inv)); err != nil {
		return nil, fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return r.GetByID(ctx, inv.ID)
}

// GetByID returns the normalized invoice with the given ID.
func (r *mongoInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var doc invoiceDoc
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("invoice %s not found", id)
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	inv := doc.toModel()
	return &inv, nil
}

// Update replaces the stored invoice document.
func (r *mongoInvoiceRepo) Update(ctx context.Context, inv models.Invoice) (*models.Invoice, error) {
	inv.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": inv.ID}, toDoc(inv))
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("invoice %s not found", inv.ID)
	}
	return r.GetByID(ctx, inv.ID)
}

// UpdateStatus sets the stored status only. Used by the explicit
// mark-sent / cancel transitions.
func (r *mongoInvoiceRepo) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": string(status), "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("invoice %s not found", id)
	}
	return nil
}

// DeleteByID removes an invoice.
func (r *mongoInvoiceRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("invoiceRepo.DeleteByID: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("invoice %s not found", id)
	}
	return nil
}

// List returns all invoices, newest first.
func (r *mongoInvoiceRepo) List(ctx context.Context) ([]models.Invoice, error) {
	return r.list(ctx, bson.M{})
}

// ListByProject returns all invoices for a project, newest first.
func (r *mongoInvoiceRepo) ListByProject(ctx context.Context, projectID string) ([]models.Invoice, error) {
	return r.list(ctx, bson.M{"projectId": projectID})
}

// ListByClient returns all invoices billed to a client, newest first.
func (r *mongoInvoiceRepo) ListByClient(ctx context.Context, clientID string) ([]models.Invoice, error) {
	return r.list(ctx, bson.M{"clientId": clientID})
}

func (r *mongoInvoiceRepo) list(ctx context.Context, filter bson.M) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.list: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	for cursor.Next(ctx) {
		var doc invoiceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invoiceRepo.list: decode: %w", err)
		}
		invoices = append(invoices, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("invoiceRepo.list: cursor: %w", err)
	}
	return invoices, nil
}

// AppendPayment pushes a payment onto the invoice's payment ledger.
// Payments are append-only; there is no update or delete counterpart.
func (r *mongoInvoiceRepo) AppendPayment(ctx context.Context, invoiceID string, payment models.InvoicePayment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.InvoiceID = invoiceID

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": invoiceID}, bson.M{
		"$push": bson.M{"payments": paymentToDoc(payment)},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("invoiceRepo.AppendPayment: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("invoice %s not found", invoiceID)
	}
	return nil
}
