package chat

import (
	"context"
	"time"

	chatRepo "siteworks/database/repository/chat"
	"siteworks/models"
	"siteworks/services/storage"
)

// ChatService runs project chat. Clients poll History with their last-seen
// timestamp; there is no push transport for messages. Voice notes are
// uploaded to storage and transcribed so they show up in text search.
type ChatService interface {
	CreateChannel(ctx context.Context, projectID, name string) (*models.ChatChannel, error)
	ListChannels(ctx context.Context, projectID string) ([]models.ChatChannel, error)
	PostMessage(ctx context.Context, channelID, senderID, body string) (*models.ChatMessage, error)
	PostVoiceNote(ctx context.Context, channelID, senderID, localWavPath string) (*models.ChatMessage, error)
	History(ctx context.Context, channelID string, since time.Time, limit int64) ([]models.ChatMessage, error)
}

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	Repo        chatRepo.ChatRepository
	Storage     storage.StorageService
	Transcriber Transcriber
}
