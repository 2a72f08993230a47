package projectRepo

import (
	"context"

	"siteworks/database"
	"siteworks/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectRepository interface {
	Create(ctx context.Context, project models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, project models.Project) (*models.Project, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Project, error)
}

type mongoProjectRepo struct {
	coll *mongo.Collection
}

// NewMongoProjectRepo returns a new ProjectRepository backed by MongoDB.
func NewMongoProjectRepo() ProjectRepository {
	return &mongoProjectRepo{
		coll: database.DB().Collection("projects"),
	}
}
