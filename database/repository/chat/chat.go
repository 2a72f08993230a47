package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"siteworks/database"
	"siteworks/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRepository interface {
	CreateChannel(ctx context.Context, channel models.ChatChannel) (*models.ChatChannel, error)
	GetChannel(ctx context.Context, id string) (*models.ChatChannel, error)
	ListChannelsByProject(ctx context.Context, projectID string) ([]models.ChatChannel, error)
	AppendMessage(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error)
	// History returns messages sent after the given time, oldest first.
	// Clients poll with their last-seen timestamp.
	History(ctx context.Context, channelID string, since time.Time, limit int64) ([]models.ChatMessage, error)
}

type mongoChatRepo struct {
	channels *mongo.Collection
	messages *mongo.Collection
}

// NewMongoChatRepo returns a new ChatRepository backed by MongoDB.
func NewMongoChatRepo() ChatRepository {
	db := database.DB()
	return &mongoChatRepo{
		channels: db.Collection("chat_channels"),
		messages: db.Collection("chat_messages"),
	}
}

func (r *mongoChatRepo) CreateChannel(ctx context.Context, channel models.ChatChannel) (*models.ChatChannel, error) {
	if channel.ID == "" {
		channel.ID = uuid.New().String()
	}
	channel.CreatedAt = time.Now()

	if _, err := r.channels.InsertOne(ctx, channel); err != nil {
		return nil, fmt.Errorf("chatRepo.CreateChannel: %w", err)
	}
	return &channel, nil
}

func (r *mongoChatRepo) GetChannel(ctx context.Context, id string) (*models.ChatChannel, error) {
	var channel models.ChatChannel
	err := r.channels.FindOne(ctx, bson.M{"id": id}).Decode(&channel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("channel %s not found", id)
		}
		return nil, fmt.Errorf("chatRepo.GetChannel: %w", err)
	}
	return &channel, nil
}

func (r *mongoChatRepo) ListChannelsByProject(ctx context.Context, projectID string) ([]models.ChatChannel, error) {
	cursor, err := r.channels.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("chatRepo.ListChannelsByProject: %w", err)
	}
	defer cursor.Close(ctx)

	var channels []models.ChatChannel
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, fmt.Errorf("chatRepo.ListChannelsByProject: %w", err)
	}
	return channels, nil
}

func (r *mongoChatRepo) AppendMessage(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}

	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return nil, fmt.Errorf("chatRepo.AppendMessage: %w", err)
	}
	return &msg, nil
}

func (r *mongoChatRepo) History(ctx context.Context, channelID string, since time.Time, limit int64) ([]models.ChatMessage, error) {
	filter := bson.M{"channelId": channelID}
	if !since.IsZero() {
		filter["sentAt"] = bson.M{"$gt": since}
	}
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("chatRepo.History: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("chatRepo.History: %w", err)
	}
	return msgs, nil
}
