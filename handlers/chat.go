package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"siteworks/models"
	"siteworks/services/chat"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves project chat endpoints. Clients poll history with a
// "since" timestamp.
type ChatHandler struct {
	Chat chat.ChatService
}

// CreateChannelHandler opens a channel in a project.
func (h *ChatHandler) CreateChannelHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	channel, err := h.Chat.CreateChannel(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, channel)
}

// ListChannelsHandler returns a project's channels.
func (h *ChatHandler) ListChannelsHandler(c *gin.Context) {
	channels, err := h.Chat.ListChannels(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list channels"})
		return
	}
	c.JSON(http.StatusOK, channels)
}

// PostMessageHandler appends a text message.
func (h *ChatHandler) PostMessageHandler(c *gin.Context) {
	var req models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	msg, err := h.Chat.PostMessage(c.Request.Context(), c.Param("channelId"), c.GetString("userID"), req.Body)
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// PostVoiceNoteHandler accepts a WAV upload, stores it, and transcribes it.
func (h *ChatHandler) PostVoiceNoteHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".wav") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voice notes must be WAV files"})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	msg, err := h.Chat.PostVoiceNote(c.Request.Context(), c.Param("channelId"), c.GetString("userID"), tempFilePath)
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// HistoryHandler returns messages after the "since" timestamp (RFC 3339).
func (h *ChatHandler) HistoryHandler(c *gin.Context) {
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be an RFC 3339 timestamp"})
			return
		}
		since = parsed
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	messages, err := h.Chat.History(c.Request.Context(), c.Param("channelId"), since, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
