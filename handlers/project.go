package handlers

import (
	"net/http"

	"siteworks/models"
	"siteworks/services/project"

	"github.com/gin-gonic/gin"
)

// ProjectHandler serves project CRUD and the dashboard.
type ProjectHandler struct {
	Projects project.ProjectService
}

// CreateProjectHandler starts a new project.
func (h *ProjectHandler) CreateProjectHandler(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	p, err := h.Projects.CreateProject(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProjectHandler returns one project.
func (h *ProjectHandler) GetProjectHandler(c *gin.Context) {
	p, err := h.Projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProjectsHandler lists projects, optionally by client.
func (h *ProjectHandler) ListProjectsHandler(c *gin.Context) {
	projects, err := h.Projects.ListProjects(c.Request.Context(), c.Query("clientId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// UpdateProjectHandler edits a project.
func (h *ProjectHandler) UpdateProjectHandler(c *gin.Context) {
	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	p, err := h.Projects.UpdateProject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProjectHandler removes a project.
func (h *ProjectHandler) DeleteProjectHandler(c *gin.Context) {
	if err := h.Projects.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// DashboardHandler returns the project home screen aggregates.
func (h *ProjectHandler) DashboardHandler(c *gin.Context) {
	dashboard, err := h.Projects.Dashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
