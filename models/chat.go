package models

import "time"

// ChatChannel is a conversation scoped to a project.
type ChatChannel struct {
	ID        string    `bson:"id" json:"id"`
	ProjectID string    `bson:"projectId" json:"projectId"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ChatMessage is one message in a channel. Clients poll for history; there
// is no push transport for chat.
type ChatMessage struct {
	ID        string `bson:"id" json:"id"`
	ChannelID string `bson:"channelId" json:"channelId"`
	SenderID  string `bson:"senderId" json:"senderId"`
	Body      string `bson:"body" json:"body"`
	// Transcript holds the speech-to-text result for voice notes.
	Transcript string    `bson:"transcript,omitempty" json:"transcript,omitempty"`
	SentAt     time.Time `bson:"sentAt" json:"sentAt"`
}

// PostMessageRequest posts a text message to a channel.
type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}
