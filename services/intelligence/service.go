package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"siteworks/models"
	"siteworks/utils"

	"go.uber.org/zap"
)

const maxRecentTopics = 5

// ProjectHealth summarizes schedule and billing state into a short
// narrative a site manager can read on the way to the morning standup.
func (s *DefaultAIService) ProjectHealth(ctx context.Context, projectID string) (*models.AIResponse, error) {
	facts, err := s.gatherFacts(ctx, projectID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"You are an assistant for a construction project management tool. "+
			"Summarize the health of this project in at most four sentences, "+
			"flagging schedule or payment risks.\n\n%s", facts)

	return s.generate(ctx, "health", prompt)
}

// FinancialForecast projects cash flow from the derived invoice figures.
func (s *DefaultAIService) FinancialForecast(ctx context.Context, projectID string) (*models.AIResponse, error) {
	facts, err := s.gatherFacts(ctx, projectID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"You are an assistant for a construction project management tool. "+
			"Based on the figures below, give a short cash-flow outlook for this "+
			"project: expected collections, retention still held, and any overdue "+
			"amounts worth chasing.\n\n%s", facts)

	return s.generate(ctx, "forecast", prompt)
}

// Ask answers a free-form question. The user's rolling context fills in
// the project when the request omits it.
func (s *DefaultAIService) Ask(ctx context.Context, req models.AIRequest) (*models.AIResponse, error) {
	logger := utils.GetLogger()

	aiCtx, err := s.CtxStore.Get(ctx, req.UserID)
	if err != nil {
		logger.Warn("Ask: failed to load AI context", zap.Error(err))
		aiCtx = &models.AIContext{}
	}

	projectID := req.ProjectID
	if projectID == "" {
		projectID = aiCtx.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("no project in question or conversation context")
	}

	facts, err := s.gatherFacts(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var history string
	if len(aiCtx.RecentTopics) > 0 {
		history = "Recent topics in this conversation: " + strings.Join(aiCtx.RecentTopics, "; ") + "\n\n"
	}
	prompt := fmt.Sprintf(
		"You are an assistant for a construction project management tool. "+
			"Answer the user's question using only the project data below. "+
			"If the data does not contain the answer, say so.\n\n%s%s\nQuestion: %s",
		history, facts, req.Text)

	resp, err := s.generate(ctx, "search", prompt)
	if err != nil {
		return nil, err
	}

	aiCtx.ProjectID = projectID
	aiCtx.LastKind = resp.Kind
	aiCtx.RecentTopics = append(aiCtx.RecentTopics, req.Text)
	if len(aiCtx.RecentTopics) > maxRecentTopics {
		aiCtx.RecentTopics = aiCtx.RecentTopics[len(aiCtx.RecentTopics)-maxRecentTopics:]
	}
	if err := s.CtxStore.Set(ctx, req.UserID, aiCtx); err != nil {
		logger.Warn("Ask: failed to save AI context", zap.Error(err))
	}
	return resp, nil
}

// gatherFacts flattens project, board, and derived billing state into the
// plain-text block the prompts are grounded on.
func (s *DefaultAIService) gatherFacts(ctx context.Context, projectID string) (string, error) {
	p, err := s.Projects.GetProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	tasks, err := s.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	fin, err := s.Billing.ProjectFinancials(ctx, projectID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	var open, overdueTasks int
	for _, t := range tasks {
		if t.Status != models.TaskStatusDone {
			open++
			if t.DueDate != nil && t.DueDate.Before(now) {
				overdueTasks++
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Project: %s (status %s, budget %s)\n", p.Name, p.Status, p.Budget)
	fmt.Fprintf(&sb, "Tasks: %d total, %d open, %d past due\n", len(tasks), open, overdueTasks)
	fmt.Fprintf(&sb, "Invoices: %d total, %d paid, %d overdue, %d draft\n",
		fin.InvoiceCount, fin.PaidCount, fin.OverdueCount, fin.DraftCount)
	fmt.Fprintf(&sb, "Invoiced %s, collected %s, outstanding %s, retention held %s, overdue balance %s\n",
		fin.TotalInvoiced, fin.TotalCollected, fin.TotalOutstanding, fin.TotalRetained, fin.OverdueBalance)
	s.appendKnowledge(ctx, &sb, projectID, now)
	return sb.String(), nil
}

// appendKnowledge adds document metadata and the past week's chat to the
// facts block. Lookup failures are logged and skipped so the core project
// and billing facts still reach the model.
func (s *DefaultAIService) appendKnowledge(ctx context.Context, sb *strings.Builder, projectID string, now time.Time) {
	logger := utils.GetLogger()

	if s.Documents != nil {
		docs, err := s.Documents.ListByProject(ctx, projectID)
		if err != nil {
			logger.Warn("appendKnowledge: document lookup failed", zap.Error(err))
		} else if len(docs) > 0 {
			fmt.Fprintf(sb, "Documents on file (%d):\n", len(docs))
			for _, d := range docs {
				fmt.Fprintf(sb, "- %s (%s, uploaded %s)\n", d.Name, d.ResourceType, d.CreatedAt.Format("2006-01-02"))
			}
		}
	}

	if s.Chat == nil {
		return
	}
	channels, err := s.Chat.ListChannelsByProject(ctx, projectID)
	if err != nil {
		logger.Warn("appendKnowledge: channel lookup failed", zap.Error(err))
		return
	}
	since := now.AddDate(0, 0, -7)
	for _, ch := range channels {
		msgs, err := s.Chat.History(ctx, ch.ID, since, 20)
		if err != nil {
			logger.Warn("appendKnowledge: history lookup failed",
				zap.String("channelID", ch.ID), zap.Error(err))
			continue
		}
		if len(msgs) == 0 {
			continue
		}
		fmt.Fprintf(sb, "Recent chat in %q:\n", ch.Name)
		for _, m := range msgs {
			body := m.Body
			if body == "" {
				body = m.Transcript
			}
			if body == "" {
				continue
			}
			fmt.Fprintf(sb, "- %s\n", body)
		}
	}
}

func (s *DefaultAIService) generate(ctx context.Context, kind, prompt string) (*models.AIResponse, error) {
	text, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &models.AIResponse{
		Kind:         kind,
		ResponseText: text,
		GeneratedAt:  time.Now(),
	}, nil
}
