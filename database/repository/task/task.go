package taskRepo

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

type TaskRepository interface {
	Create(ctx context.Context, task models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, task models.Task) (*models.Task, error)
	Move(ctx context.Context, id string, status models.TaskStatus, position int) error
	DeleteByID(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]models.Task, error)
}

type mongoTaskRepo struct {
	coll *mongo.Collection
}

// NewMongoTaskRepo returns a new TaskRepository backed by MongoDB.
func NewMongoTaskRepo() TaskRepository {
	return &mongoTaskRepo{
		coll: database.DB().Collection("tasks"),
	}
}

func (r *mongoTaskRepo) Create(ctx context.Context, task models.Task) (*models.Task, error) {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("taskRepo.Create: %w", err)
	}
	return &task, nil
}

func (r *mongoTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("task %s not found", id)
		}
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}
	return &task, nil
}

func (r *mongoTaskRepo) Update(ctx context.Context, task models.Task) (*models.Task, error) {
	task.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": task.ID}, task)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.Update: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("task %s not found", task.ID)
	}
	return &task, nil
}

// Move changes a card's board column and position.
func (r *mongoTaskRepo) Move(ctx context.Context, id string, status models.TaskStatus, position int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": status, "position": position, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("taskRepo.Move: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

func (r *mongoTaskRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("taskRepo.DeleteByID: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

func (r *mongoTaskRepo) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return r.list(ctx, bson.M{"projectId": projectID})
}

func (r *mongoTaskRepo) ListByAssignee(ctx context.Context, assigneeID string) ([]models.Task, error) {
	return r.list(ctx, bson.M{"assigneeId": assigneeID})
}

func (r *mongoTaskRepo) list(ctx context.Context, filter bson.M) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.list: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("taskRepo.list: %w", err)
	}
	return tasks, nil
}
