package task

import (
	"context"
	"fmt"

	taskRepo "siteworks/database/repository/task"
	"siteworks/models"
	"siteworks/services/notification"
	"siteworks/utils"

	"go.uber.org/zap"
)

// TaskService manages project task boards.
type TaskService interface {
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error)
	MoveTask(ctx context.Context, id string, req models.MoveTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]models.Task, error)
}

// DefaultTaskService is the production implementation.
type DefaultTaskService struct {
	Repo     taskRepo.TaskRepository
	Notifier notification.NotificationService
}

// CreateTask adds a card to the board's todo column. The assignee, if any,
// gets a push.
func (s *DefaultTaskService) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	created, err := s.Repo.Create(ctx, models.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		Priority:    priority,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if created.AssigneeID != "" {
		s.notifyAssignment(ctx, created)
	}
	return created, nil
}

// GetTask returns one card.
func (s *DefaultTaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateTask edits a card. Reassignment pushes to the new assignee.
func (s *DefaultTaskService) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousAssignee := t.AssigneeID

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		t.AssigneeID = *req.AssigneeID
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}

	updated, err := s.Repo.Update(ctx, *t)
	if err != nil {
		return nil, err
	}

	if updated.AssigneeID != "" && updated.AssigneeID != previousAssignee {
		s.notifyAssignment(ctx, updated)
	}
	return updated, nil
}

// MoveTask drags a card to another column/position.
func (s *DefaultTaskService) MoveTask(ctx context.Context, id string, req models.MoveTaskRequest) (*models.Task, error) {
	if err := s.Repo.Move(ctx, id, req.Status, req.Position); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

// DeleteTask removes a card.
func (s *DefaultTaskService) DeleteTask(ctx context.Context, id string) error {
	return s.Repo.DeleteByID(ctx, id)
}

// ListByProject returns the project's board.
func (s *DefaultTaskService) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return s.Repo.ListByProject(ctx, projectID)
}

// ListByAssignee returns the cards assigned to one user across projects.
func (s *DefaultTaskService) ListByAssignee(ctx context.Context, assigneeID string) ([]models.Task, error) {
	return s.Repo.ListByAssignee(ctx, assigneeID)
}

func (s *DefaultTaskService) notifyAssignment(ctx context.Context, t *models.Task) {
	if s.Notifier == nil {
		return
	}
	err := s.Notifier.SendPush(ctx, t.AssigneeID, models.NotificationKindTaskAssigned,
		"New task assigned",
		fmt.Sprintf("You were assigned %q", t.Title),
		map[string]string{
			"taskId":    t.ID,
			"projectId": t.ProjectID,
		})
	if err != nil {
		utils.GetLogger().Warn("Task assignment push failed",
			zap.String("taskId", t.ID), zap.Error(err))
	}
}
