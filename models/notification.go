package models

import "time"

// NotificationKind classifies pushes so the client can route taps.
type NotificationKind string

const (
	NotificationKindTaskAssigned   NotificationKind = "task_assigned"
	NotificationKindInvoiceDueSoon NotificationKind = "invoice_due_soon"
	NotificationKindInvoiceOverdue NotificationKind = "invoice_overdue"
	NotificationKindChatMention    NotificationKind = "chat_mention"
)

// Notification is the in-app record of a push that was sent.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Kind      NotificationKind  `bson:"kind" json:"kind"`
	Title     string            `bson:"title" json:"title"`
	Body      string            `bson:"body" json:"body"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool              `bson:"read" json:"read"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}
