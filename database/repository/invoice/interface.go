package invoiceRepo

import (
	"context"

	"siteworks/database"
	"siteworks/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// InvoiceRepository loads and stores invoice aggregates. Reads pass through
// a normalization step that tolerates legacy field aliases and loosely-typed
// numerics, so everything above this package only ever sees the canonical
// models.Invoice shape.
type InvoiceRepository interface {
	Create(ctx context.Context, inv models.Invoice) (*models.Invoice, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	Update(ctx context.Context, inv models.Invoice) (*models.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) error
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Invoice, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Invoice, error)
	AppendPayment(ctx context.Context, invoiceID string, payment models.InvoicePayment) error
}

type mongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo returns a new InvoiceRepository backed by MongoDB.
func NewMongoInvoiceRepo() InvoiceRepository {
	return &mongoInvoiceRepo{
		coll: database.DB().Collection("invoices"),
	}
}
