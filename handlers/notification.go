package handlers

import (
	"net/http"
	"strconv"

	"siteworks/services/notification"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the in-app notification feed.
type NotificationHandler struct {
	Notifications notification.NotificationService
}

// ListNotificationsHandler returns the caller's recent notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	items, err := h.Notifications.ListForUser(c.Request.Context(), c.GetString("userID"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// MarkNotificationReadHandler marks one notification as read.
func (h *NotificationHandler) MarkNotificationReadHandler(c *gin.Context) {
	if err := h.Notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}
