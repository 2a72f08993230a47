package handlers

import (
	"siteworks/services/billing"
	"siteworks/services/chat"
	"siteworks/services/client"
	"siteworks/services/document"
	"siteworks/services/intelligence"
	"siteworks/services/notification"
	"siteworks/services/project"
	"siteworks/services/task"
	"siteworks/services/user"
)

// HandlerBundle groups every endpoint handler so route registration takes
// a single value.
type HandlerBundle struct {
	Auth          *AuthHandler
	Clients       *ClientHandler
	Projects      *ProjectHandler
	Tasks         *TaskHandler
	Invoices      *InvoiceHandler
	Documents     *DocumentHandler
	Chat          *ChatHandler
	AI            *AIHandler
	Notifications *NotificationHandler
}

// NewHandlerBundle wires handlers over their services.
func NewHandlerBundle(
	userSvc user.UserService,
	clientSvc client.ClientService,
	projectSvc project.ProjectService,
	taskSvc task.TaskService,
	billingSvc billing.BillingService,
	documentSvc document.DocumentService,
	chatSvc chat.ChatService,
	aiSvc intelligence.AIService,
	notifSvc notification.NotificationService,
) *HandlerBundle {
	return &HandlerBundle{
		Auth:          &AuthHandler{Users: userSvc},
		Clients:       &ClientHandler{Clients: clientSvc},
		Projects:      &ProjectHandler{Projects: projectSvc},
		Tasks:         &TaskHandler{Tasks: taskSvc},
		Invoices:      &InvoiceHandler{Billing: billingSvc},
		Documents:     &DocumentHandler{Documents: documentSvc},
		Chat:          &ChatHandler{Chat: chatSvc},
		AI:            &AIHandler{AI: aiSvc},
		Notifications: &NotificationHandler{Notifications: notifSvc},
	}
}
