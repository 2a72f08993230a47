package models

import "time"

// AIRequest is a free-form question to the project assistant.
type AIRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId" binding:"required"`
	Text      string `json:"text"`
}

// AIResponse carries the assistant's answer back to the client.
type AIResponse struct {
	Kind         string    `json:"kind"` // "health", "forecast", "search", "chat"
	ResponseText string    `json:"responseText"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// AIContext is the rolling conversation state kept per user in Redis.
type AIContext struct {
	ProjectID    string   `json:"projectId,omitempty"`
	LastKind     string   `json:"lastKind,omitempty"`
	RecentTopics []string `json:"recentTopics,omitempty"`
}
