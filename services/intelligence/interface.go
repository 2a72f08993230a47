package intelligence

import (
	"context"

	chatRepo "siteworks/database/repository/chat"
	documentRepo "siteworks/database/repository/document"
	taskRepo "siteworks/database/repository/task"
	"siteworks/models"
	"siteworks/services/billing"
	"siteworks/services/project"
)

// AIService is the project assistant: health summaries, cash-flow
// forecasts, and free-form questions grounded in project data.
type AIService interface {
	ProjectHealth(ctx context.Context, projectID string) (*models.AIResponse, error)
	FinancialForecast(ctx context.Context, projectID string) (*models.AIResponse, error)
	Ask(ctx context.Context, req models.AIRequest) (*models.AIResponse, error)
}

// DefaultAIService is the production implementation.
type DefaultAIService struct {
	Gemini    *GeminiClient
	CtxStore  *RedisContextStore
	Projects  project.ProjectService
	Tasks     taskRepo.TaskRepository
	Billing   billing.BillingService
	Chat      chatRepo.ChatRepository
	Documents documentRepo.DocumentRepository
}
