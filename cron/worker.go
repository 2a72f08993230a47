package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"siteworks/config"
	projectRepo "siteworks/database/repository/project"
	"siteworks/models"
	"siteworks/services/billing"
	"siteworks/services/notification"
	"siteworks/services/reminder"
	"siteworks/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	scanInterval  = 24 * time.Hour
	dueSoonWindow = 3 * 24 * time.Hour
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	}
}

// InitReminderWorker starts the asynq worker that delivers invoice
// reminders, plus the nightly scan that enqueues them.
func InitReminderWorker(billingSvc billing.BillingService, projects projectRepo.ProjectRepository, notifSvc notification.NotificationService) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(reminder.TypeInvoiceReminder, handleInvoiceReminder(notifSvc))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("Reminder worker failed to start",
					zap.Int("attempt", attempt), zap.Error(err))
				if attempt == maxAttempts {
					logger.Fatal("Reminder worker exhausted retries")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runInvoiceScan(billingSvc, projects)
}

func handleInvoiceReminder(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p reminder.InvoiceReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return err
		}

		err := notifSvc.SendPush(ctx, p.UserID, p.Kind, p.Title, p.Body, map[string]string{
			"invoiceId":     p.InvoiceID,
			"invoiceNumber": p.InvoiceNumber,
		})
		if err != nil {
			logger.Error("Failed to deliver invoice reminder",
				zap.String("invoiceId", p.InvoiceID), zap.Error(err))
		}
		return err
	}
}

// runInvoiceScan walks every invoice once a day, derives its status, and
// enqueues reminders for invoices that are overdue or due within three
// days with an open balance. Stored statuses are never rewritten; the
// derivation engine is the sole authority on effective status.
func runInvoiceScan(billingSvc billing.BillingService, projects projectRepo.ProjectRepository) {
	logger := utils.GetLogger()
	client := asynq.NewClient(redisOpts())
	defer client.Close()

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		if err := scanOnce(context.Background(), client, billingSvc, projects); err != nil {
			logger.Error("Invoice scan failed", zap.Error(err))
		}
		<-ticker.C
	}
}

func scanOnce(ctx context.Context, client *asynq.Client, billingSvc billing.BillingService, projects projectRepo.ProjectRepository) error {
	logger := utils.GetLogger()
	now := time.Now()

	views, err := billingSvc.ListInvoices(ctx, models.InvoiceFilter{})
	if err != nil {
		return fmt.Errorf("list invoices: %w", err)
	}

	var enqueued int
	for _, v := range views {
		if !v.Financials.Balance.IsPositive() {
			continue
		}

		var payload reminder.InvoiceReminderPayload
		switch {
		case v.EffectiveStatus == models.InvoiceStatusOverdue:
			payload = reminder.InvoiceReminderPayload{
				InvoiceID:     v.ID,
				InvoiceNumber: v.InvoiceNumber,
				Kind:          models.NotificationKindInvoiceOverdue,
				Title:         "Invoice overdue",
				Body: fmt.Sprintf("Invoice %s is overdue with %s outstanding",
					v.InvoiceNumber, v.Financials.Balance),
			}
		case v.EffectiveStatus == models.InvoiceStatusSent &&
			v.DueDate != nil && v.DueDate.After(now) && v.DueDate.Sub(now) <= dueSoonWindow:
			payload = reminder.InvoiceReminderPayload{
				InvoiceID:     v.ID,
				InvoiceNumber: v.InvoiceNumber,
				Kind:          models.NotificationKindInvoiceDueSoon,
				Title:         "Invoice due soon",
				Body: fmt.Sprintf("Invoice %s (%s outstanding) is due on %s",
					v.InvoiceNumber, v.Financials.Balance, v.DueDate.Format("2 Jan")),
			}
		default:
			continue
		}

		project, err := projects.GetByID(ctx, v.ProjectID)
		if err != nil || project.ManagerID == "" {
			continue
		}
		payload.UserID = project.ManagerID

		task, opts, err := reminder.NewInvoiceReminderTask(payload, time.Time{})
		if err != nil {
			logger.Error("Failed to build reminder task",
				zap.String("invoiceId", v.ID), zap.Error(err))
			continue
		}
		if _, err := client.EnqueueContext(ctx, task, opts...); err != nil {
			logger.Error("Failed to enqueue reminder",
				zap.String("invoiceId", v.ID), zap.Error(err))
			continue
		}
		enqueued++
	}

	logger.Info("Invoice scan complete",
		zap.Int("invoices", len(views)),
		zap.Int("remindersEnqueued", enqueued))
	return nil
}
