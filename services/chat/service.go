package chat

import (
	"context"
	"fmt"
	"time"

	"siteworks/models"
	"siteworks/utils"

	"go.uber.org/zap"
)

// CreateChannel opens a named conversation in a project.
func (s *DefaultChatService) CreateChannel(ctx context.Context, projectID, name string) (*models.ChatChannel, error) {
	if name == "" {
		return nil, fmt.Errorf("channel name is required")
	}
	return s.Repo.CreateChannel(ctx, models.ChatChannel{
		ProjectID: projectID,
		Name:      name,
	})
}

// ListChannels returns the project's channels.
func (s *DefaultChatService) ListChannels(ctx context.Context, projectID string) ([]models.ChatChannel, error) {
	return s.Repo.ListChannelsByProject(ctx, projectID)
}

// PostMessage appends a text message to a channel.
func (s *DefaultChatService) PostMessage(ctx context.Context, channelID, senderID, body string) (*models.ChatMessage, error) {
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	if _, err := s.Repo.GetChannel(ctx, channelID); err != nil {
		return nil, err
	}
	return s.Repo.AppendMessage(ctx, models.ChatMessage{
		ChannelID: channelID,
		SenderID:  senderID,
		Body:      body,
	})
}

// PostVoiceNote uploads the recording, transcribes it, and appends a
// message whose body is the audio's storage identifier. Transcription
// failure is not fatal; the note is still posted without a transcript.
func (s *DefaultChatService) PostVoiceNote(ctx context.Context, channelID, senderID, localWavPath string) (*models.ChatMessage, error) {
	logger := utils.GetLogger()

	if _, err := s.Repo.GetChannel(ctx, channelID); err != nil {
		return nil, err
	}

	folder := fmt.Sprintf("channels/%s/voice", channelID)
	publicID, err := s.Storage.UploadFile(ctx, localWavPath, folder)
	if err != nil {
		return nil, fmt.Errorf("voice note upload: %w", err)
	}

	transcript, err := s.Transcriber.TranscribeWav(ctx, localWavPath)
	if err != nil {
		logger.Warn("Voice note transcription failed",
			zap.String("channelId", channelID), zap.Error(err))
		transcript = ""
	}

	msg, err := s.Repo.AppendMessage(ctx, models.ChatMessage{
		ChannelID:  channelID,
		SenderID:   senderID,
		Body:       publicID,
		Transcript: transcript,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Voice note posted",
		zap.String("channelId", channelID),
		zap.String("messageId", msg.ID),
		zap.Bool("transcribed", transcript != ""))
	return msg, nil
}

// History returns messages sent after the given timestamp, oldest first.
// A zero since returns the most recent page.
func (s *DefaultChatService) History(ctx context.Context, channelID string, since time.Time, limit int64) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.Repo.History(ctx, channelID, since, limit)
}
