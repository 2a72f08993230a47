package handlers

import (
	"net/http"

	"siteworks/models"
	"siteworks/services/task"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves the project task board.
type TaskHandler struct {
	Tasks task.TaskService
}

// CreateTaskHandler adds a card to the board.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	t, err := h.Tasks.CreateTask(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetTaskHandler returns one card.
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	t, err := h.Tasks.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// ListTasksHandler returns a project board or a user's assignments.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	ctx := c.Request.Context()
	if assignee := c.Query("assigneeId"); assignee != "" {
		tasks, err := h.Tasks.ListByAssignee(ctx, assignee)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
			return
		}
		c.JSON(http.StatusOK, tasks)
		return
	}

	projectID := c.Query("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId or assigneeId is required"})
		return
	}
	tasks, err := h.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTaskHandler edits a card.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	t, err := h.Tasks.UpdateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// MoveTaskHandler drags a card to another column/position.
func (h *TaskHandler) MoveTaskHandler(c *gin.Context) {
	var req models.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	t, err := h.Tasks.MoveTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTaskHandler removes a card.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	if err := h.Tasks.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
