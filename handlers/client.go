package handlers

import (
	"net/http"

	"siteworks/models"
	"siteworks/services/client"

	"github.com/gin-gonic/gin"
)

// ClientHandler serves customer records.
type ClientHandler struct {
	Clients client.ClientService
}

// CreateClientHandler adds a customer.
func (h *ClientHandler) CreateClientHandler(c *gin.Context) {
	var body models.Client
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	created, err := h.Clients.CreateClient(c.Request.Context(), body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetClientHandler returns one customer.
func (h *ClientHandler) GetClientHandler(c *gin.Context) {
	rec, err := h.Clients.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListClientsHandler returns all customers.
func (h *ClientHandler) ListClientsHandler(c *gin.Context) {
	clients, err := h.Clients.ListClients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

// UpdateClientHandler edits a customer.
func (h *ClientHandler) UpdateClientHandler(c *gin.Context) {
	var body models.Client
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}
	body.ID = c.Param("id")

	updated, err := h.Clients.UpdateClient(c.Request.Context(), body)
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteClientHandler removes a customer.
func (h *ClientHandler) DeleteClientHandler(c *gin.Context) {
	if err := h.Clients.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
