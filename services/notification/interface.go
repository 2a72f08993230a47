package notification

import (
	"context"

	notificationRepo "siteworks/database/repository/notification"
	"siteworks/models"
	userSvc "siteworks/services/user"
)

// NotificationService sends FCM pushes and keeps an in-app record of each
// one so clients can render a notification feed.
type NotificationService interface {
	SendPush(ctx context.Context, userID string, kind models.NotificationKind, title, body string, data map[string]string) error
	ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users userSvc.UserService
	Repo  notificationRepo.NotificationRepository
}
