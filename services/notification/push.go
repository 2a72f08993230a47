package notification

import (
	"context"
	"fmt"

	"siteworks/models"
	"siteworks/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendPush looks up the user's FCM token, sends the push, and persists the
// in-app record. A user without a registered token still gets the in-app
// record; the push is simply skipped.
func (s *DefaultNotificationService) SendPush(ctx context.Context, userID string, kind models.NotificationKind, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find user %s: %w", userID, err)
	}

	if data == nil {
		data = map[string]string{}
	}
	data["kind"] = string(kind)

	if _, err := s.Repo.Create(ctx, models.Notification{
		ID:     uuid.New().String(),
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
		Data:   data,
	}); err != nil {
		logger.Error("SendPush: failed to persist notification record", zap.Error(err))
	}

	if u.FCMToken == "" {
		logger.Debug("SendPush: user has no FCM token, skipping push",
			zap.String("userId", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}

	logger.Info("Push notification sent",
		zap.String("userId", userID),
		zap.String("kind", string(kind)))
	return nil
}

// ListForUser returns the user's most recent notifications.
func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.Repo.ListByUser(ctx, userID, limit)
}

// MarkRead marks one notification as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(ctx, id)
}
