package clientRepo

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
)

type ClientRepository interface {
	Create(ctx context.Context, client models.Client) (*models.Client, error)
	GetByID(ctx context.Context, id string) (*models.Client, error)
	Update(ctx context.Context, client models.Client) (*models.Client, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Client, error)
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo returns a new ClientRepository backed by MongoDB.
func NewMongoClientRepo() ClientRepository {
	return &mongoClientRepo{
		coll: database.DB().Collection("clients"),
	}
}

func (r *mongoClientRepo) Create(ctx context.Context, client models.Client) (*models.Client, error) {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, client); err != nil {
		return nil, fmt.Errorf("clientRepo.Create: %w", err)
	}
	return &client, nil
}

func (r *mongoClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("client %s not found", id)
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &client, nil
}

func (r *mongoClientRepo) Update(ctx context.Context, client models.Client) (*models.Client, error) {
	client.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": client.ID}, client)
	if err != nil {
		return nil, fmt.Errorf("clientRepo.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("client %s not found", client.ID)
	}
	return &client, nil
}

func (r *mongoClientRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("clientRepo.DeleteByID: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("client %s not found", id)
	}
	return nil
}

func (r *mongoClientRepo) List(ctx context.Context) ([]models.Client, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("clientRepo.List: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("clientRepo.List: %w", err)
	}
	return clients, nil
}
