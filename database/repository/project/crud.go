package projectRepo

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

// Create inserts a new project and returns it.
func (r *mongoProjectRepo) Create(ctx context.Context, project models.Project) (*models.Project, error) {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPlanning
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("projectRepo.Create: %w", err)
	}
	return &project, nil
}

// GetByID returns a project by its ID.
func (r *mongoProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("project %s not found", id)
		}
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}
	return &project, nil
}

// Update replaces the stored project.
func (r *mongoProjectRepo) Update(ctx context.Context, project models.Project) (*models.Project, error) {
	project.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": project.ID}, project)
	if err != nil {
		return nil, fmt.Errorf("projectRepo.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("project %s not found", project.ID)
	}
	return &project, nil
}

// DeleteByID removes a project.
func (r *mongoProjectRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("projectRepo.DeleteByID: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

// List returns all projects, newest first.
func (r *mongoProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	return r.list(ctx, bson.M{})
}

// ListByClient returns all projects for a client.
func (r *mongoProjectRepo) ListByClient(ctx context.Context, clientID string) ([]models.Project, error) {
	return r.list(ctx, bson.M{"clientId": clientID})
}

func (r *mongoProjectRepo) list(ctx context.Context, filter bson.M) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("projectRepo.list: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("projectRepo.list: %w", err)
	}
	return projects, nil
}
