package project

import (
	"context"
	"encoding/json"
	"time"

	"siteworks/config"
	"siteworks/models"
	"siteworks/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dashboardCachePrefix = "dashboard:project:"

// Dashboard assembles the project home screen: task board counts plus
// invoice aggregates derived through the billing engine. The result is
// cached in Redis for a short TTL because the mobile app polls it.
func (s *DefaultProjectService) Dashboard(ctx context.Context, id string) (*models.ProjectDashboard, error) {
	logger := utils.GetLogger()
	cache := utils.GetCacheClient()
	key := dashboardCachePrefix + id

	if data, err := cache.Get(ctx, key).Result(); err == nil {
		var cached models.ProjectDashboard
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return &cached, nil
		}
	} else if err != redis.Nil {
		logger.Warn("Dashboard: cache read failed", zap.Error(err))
	}

	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	dashboard, err := s.buildDashboard(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(dashboard); err == nil {
		ttl := time.Duration(config.AppConfig.DashboardCacheTTL) * time.Second
		if err := cache.Set(ctx, key, b, ttl).Err(); err != nil {
			logger.Warn("Dashboard: cache write failed", zap.Error(err))
		}
	}
	return dashboard, nil
}

func (s *DefaultProjectService) buildDashboard(ctx context.Context, id string) (*models.ProjectDashboard, error) {
	now := time.Now()

	tasks, err := s.Tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, 4)
	var open, overdueTasks int
	for _, t := range tasks {
		counts[string(t.Status)]++
		if t.Status != models.TaskStatusDone {
			open++
			if t.DueDate != nil && t.DueDate.Before(now) {
				overdueTasks++
			}
		}
	}

	fin, err := s.Billing.ProjectFinancials(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.ProjectDashboard{
		ProjectID:        id,
		TaskCounts:       counts,
		OpenTasks:        open,
		OverdueTasks:     overdueTasks,
		InvoicedTotal:    fin.TotalInvoiced,
		CollectedTotal:   fin.TotalCollected,
		OutstandingTotal: fin.TotalOutstanding,
		OverdueInvoices:  fin.OverdueCount,
		GeneratedAt:      now,
	}, nil
}

func (s *DefaultProjectService) invalidateDashboard(ctx context.Context, id string) {
	if err := utils.GetCacheClient().Del(ctx, dashboardCachePrefix+id).Err(); err != nil {
		utils.GetLogger().Warn("Dashboard: cache invalidation failed",
			zap.String("projectId", id), zap.Error(err))
	}
}
