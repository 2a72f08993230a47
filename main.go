package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"siteworks/config"
	"siteworks/cron"
	"siteworks/database"
	chatRepoPkg "siteworks/database/repository/chat"
	clientRepoPkg "siteworks/database/repository/client"
	documentRepoPkg "siteworks/database/repository/document"
	invoiceRepoPkg "siteworks/database/repository/invoice"
	notificationRepoPkg "siteworks/database/repository/notification"
	projectRepoPkg "siteworks/database/repository/project"
	taskRepoPkg "siteworks/database/repository/task"
	userRepoPkg "siteworks/database/repository/user"
	"siteworks/handlers"
	"siteworks/middleware"
	"siteworks/routes"
	"siteworks/services/billing"
	"siteworks/services/chat"
	"siteworks/services/client"
	"siteworks/services/document"
	"siteworks/services/intelligence"
	"siteworks/services/notification"
	"siteworks/services/project"
	"siteworks/services/storage"
	"siteworks/services/task"
	"siteworks/services/user"
	"siteworks/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cld, err := utils.NewCloudinaryClient()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary client: %v", err)
	}
	storageService := storage.NewStorageService(cld,
		config.AppConfig.CloudinaryCloudName, config.AppConfig.CloudinaryAPISecret)

	geminiClient, err := intelligence.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	projectRepo := projectRepoPkg.NewMongoProjectRepo()
	taskRepo := taskRepoPkg.NewMongoTaskRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	documentRepo := documentRepoPkg.NewMongoDocumentRepo()
	chatRepo := chatRepoPkg.NewMongoChatRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// Services.
	userService := &user.DefaultUserService{Repo: userRepo}
	clientService := &client.DefaultClientService{Repo: clientRepo}
	notificationService := &notification.DefaultNotificationService{
		Users: userService,
		Repo:  notificationRepo,
	}
	billingService := &billing.DefaultBillingService{
		Repo:     invoiceRepo,
		Projects: projectRepo,
	}
	projectService := &project.DefaultProjectService{
		Repo:    projectRepo,
		Tasks:   taskRepo,
		Billing: billingService,
	}
	taskService := &task.DefaultTaskService{
		Repo:     taskRepo,
		Notifier: notificationService,
	}
	documentService := &document.DefaultDocumentService{
		Repo:    documentRepo,
		Storage: storageService,
	}
	chatService := &chat.DefaultChatService{
		Repo:        chatRepo,
		Storage:     storageService,
		Transcriber: &chat.GoogleTranscriber{},
	}
	ctxStore := intelligence.NewRedisContextStore(utils.GetAIContextCacheClient(), 30*time.Minute)
	aiService := &intelligence.DefaultAIService{
		Gemini:    geminiClient,
		CtxStore:  ctxStore,
		Projects:  projectService,
		Tasks:     taskRepo,
		Billing:   billingService,
		Chat:      chatRepo,
		Documents: documentRepo,
	}

	handlerBundle := handlers.NewHandlerBundle(
		userService,
		clientService,
		projectService,
		taskService,
		billingService,
		documentService,
		chatService,
		aiService,
		notificationService,
	)

	routes.RegisterRoutes(router, handlerBundle, userRepo)

	// Background reminder worker and nightly invoice scan.
	cron.InitReminderWorker(billingService, projectRepo, notificationService)

	// Health monitor over Redis and Mongo.
	go utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAIContextCacheClient()},
		database.MongoClient,
	)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
