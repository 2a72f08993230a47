package models

import "time"

// TaskStatus is a task-board column.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority orders tasks within a board column.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task is one card on a project's task board.
type Task struct {
	ID          string       `bson:"id" json:"id"`
	ProjectID   string       `bson:"projectId" json:"projectId"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus   `bson:"status" json:"status"`
	Priority    TaskPriority `bson:"priority" json:"priority"`
	AssigneeID  string       `bson:"assigneeId,omitempty" json:"assigneeId,omitempty"`
	DueDate     *time.Time   `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	// Position orders cards within a column; the board UI reassigns it on
	// drag and drop.
	Position  int       `bson:"position" json:"position"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MoveTaskRequest moves a card to another column/position.
type MoveTaskRequest struct {
	Status   TaskStatus `json:"status" binding:"required"`
	Position int        `json:"position"`
}
