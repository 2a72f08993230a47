package models

import "time"

// CreateTaskRequest adds a card to a project's board.
type CreateTaskRequest struct {
	ProjectID   string       `json:"projectId" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	AssigneeID  string       `json:"assigneeId,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
}

// UpdateTaskRequest edits a card. Nil fields are left alone.
type UpdateTaskRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	AssigneeID  *string       `json:"assigneeId,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
}
