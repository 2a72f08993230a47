package routes

import (
	"net/http"
	"time"

	userRepo "siteworks/database/repository/user"
	"siteworks/handlers"
	"siteworks/middleware"
	"siteworks/models"
	"siteworks/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(users))
		protected.GET("/me", hb.Auth.MeHandler)
		protected.PUT("/fcm-token", hb.Auth.UpdateFCMTokenHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(users), middleware.RequireRole(models.UserRoleAdmin))
		admin.GET("/users", hb.Auth.ListUsersHandler)
	}
}

// RegisterClientRoutes registers customer endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/clients")
	api.Use(middleware.JWTAuthMiddleware(users))
	{
		api.POST("", hb.Clients.CreateClientHandler)
		api.GET("", hb.Clients.ListClientsHandler)
		api.GET("/:id", hb.Clients.GetClientHandler)
		api.PUT("/:id", hb.Clients.UpdateClientHandler)
		api.DELETE("/:id", middleware.RequireRole(models.UserRoleAdmin, models.UserRoleManager), hb.Clients.DeleteClientHandler)
	}
}

// RegisterProjectRoutes registers project endpoints, including the
// dashboard, documents, chat, and the AI assistant, all scoped per project.
func RegisterProjectRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/projects")
	api.Use(middleware.JWTAuthMiddleware(users))
	{
		api.POST("", hb.Projects.CreateProjectHandler)
		api.GET("", hb.Projects.ListProjectsHandler)
		api.GET("/:id", hb.Projects.GetProjectHandler)
		api.PUT("/:id", hb.Projects.UpdateProjectHandler)
		api.DELETE("/:id", middleware.RequireRole(models.UserRoleAdmin, models.UserRoleManager), hb.Projects.DeleteProjectHandler)
		api.GET("/:id/dashboard", hb.Projects.DashboardHandler)

		// Documents.
		api.POST("/:id/documents", hb.Documents.UploadDocumentHandler)
		api.GET("/:id/documents", hb.Documents.ListDocumentsHandler)

		// Chat channels.
		api.POST("/:id/channels", hb.Chat.CreateChannelHandler)
		api.GET("/:id/channels", hb.Chat.ListChannelsHandler)

		// Assistant.
		api.GET("/:id/ai/health", hb.AI.ProjectHealthHandler)
		api.GET("/:id/ai/forecast", hb.AI.FinancialForecastHandler)
	}
}

// RegisterDocumentRoutes registers document endpoints not scoped under a
// project path.
func RegisterDocumentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/documents")
	api.Use(middleware.JWTAuthMiddleware(users))
	{
		api.GET("/:id", hb.Documents.GetDocumentHandler)
		api.DELETE("/:id", hb.Documents.DeleteDocumentHandler)
	}
}

// RegisterTaskRoutes registers task board endpoints.
func RegisterTaskRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/tasks")
	api.Use(middleware.JWTAuthMiddleware(users))
	{
		api.POST("", hb.Tasks.CreateTaskHandler)
		api.GET("", hb.Tasks.ListTasksHandler)
		api.GET("/:id", hb.Tasks.GetTaskHandler)
		api.PUT("/:id", hb.Tasks.UpdateTaskHandler)
		api.PUT("/:id/move", hb.Tasks.MoveTaskHandler)
		api.DELETE("/:id", hb.Tasks.DeleteTaskHandler)
	}
}

// RegisterInvoiceRoutes registers invoicing endpoints.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/invoices")
	api.Use(middleware.JWTAuthMiddleware(users))
	{
		api.POST("", hb.Invoices.CreateInvoiceHandler)
		api.GET("", hb.Invoices.ListInvoicesHandler)
		api.GET("/:id", hb.Invoices.GetInvoiceHandler)
		api.PUT("/:id", hb.Invoices.UpdateInvoiceHandler)
		api.DELETE("/:id", hb.Invoices.DeleteInvoiceHandler)

		api.POST("/:id/payments", hb.Invoices.RecordPaymentHandler)
		api.POST("/:id/send", hb.Invoices.MarkSentHandler)
		api.POST("/:id/cancel", hb.Invoices.CancelInvoiceHandler)
		api.POST("/:id/payment-intent", hb.Invoices.CreatePaymentIntentHandler)
	}
}

// RegisterChatRoutes registers channel-scoped chat endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/channels")
	api.Use(middleware.JWTAuthMiddleware(users))
	{
		api.POST("/:channelId/messages", hb.Chat.PostMessageHandler)
		api.POST("/:channelId/voice-notes", hb.Chat.PostVoiceNoteHandler)
		api.GET("/:channelId/messages", hb.Chat.HistoryHandler)
	}
}

// RegisterAIRoutes registers the free-form assistant endpoint.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/ai")
	api.Use(middleware.JWTAuthMiddleware(users))
	{
		api.POST("/ask", hb.AI.AskHandler)
	}
}

// RegisterNotificationRoutes registers the notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthMiddleware(users))
	{
		api.GET("", hb.Notifications.ListNotificationsHandler)
		api.PUT("/:id/read", hb.Notifications.MarkNotificationReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"deps":   utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users userRepo.UserRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb, users)
	RegisterClientRoutes(r, hb, users)
	RegisterProjectRoutes(r, hb, users)
	RegisterDocumentRoutes(r, hb, users)
	RegisterTaskRoutes(r, hb, users)
	RegisterInvoiceRoutes(r, hb, users)
	RegisterChatRoutes(r, hb, users)
	RegisterAIRoutes(r, hb, users)
	RegisterNotificationRoutes(r, hb, users)
	RegisterHealthRoute(r)
}
