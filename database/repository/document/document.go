package documentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"siteworks/database"
	"siteworks/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc models.Document) (*models.Document, error)
	GetByID(ctx context.Context, id string) (*models.Document, error)
	DeleteByID(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]models.Document, error)
}

type mongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo returns a new DocumentRepository backed by MongoDB.
func NewMongoDocumentRepo() DocumentRepository {
	return &mongoDocumentRepo{
		coll: database.DB().Collection("documents"),
	}
}

func (r *mongoDocumentRepo) Create(ctx context.Context, doc models.Document) (*models.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	doc.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("documentRepo.Create: %w", err)
	}
	return &doc, nil
}

func (r *mongoDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("document %s not found", id)
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *mongoDocumentRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("documentRepo.DeleteByID: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("document %s not found", id)
	}
	return nil
}

func (r *mongoDocumentRepo) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"projectId": projectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByProject: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("documentRepo.ListByProject: %w", err)
	}
	return docs, nil
}
