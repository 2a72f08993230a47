package reminder

import (
	"encoding/json"
	"time"

	"siteworks/models"

	"github.com/hibiken/asynq"
)

const TypeInvoiceReminder = "invoice:reminder"

// InvoiceReminderPayload is the asynq task body for one invoice reminder.
type InvoiceReminderPayload struct {
	UserID        string                  `json:"userId"`
	InvoiceID     string                  `json:"invoiceId"`
	InvoiceNumber string                  `json:"invoiceNumber"`
	Kind          models.NotificationKind `json:"kind"`
	Title         string                  `json:"title"`
	Body          string                  `json:"body"`
}

// NewInvoiceReminderTask builds the asynq task for a reminder, optionally
// deferred to fireAt.
func NewInvoiceReminderTask(payload InvoiceReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	var opts []asynq.Option
	if !fireAt.IsZero() {
		opts = append(opts, asynq.ProcessAt(fireAt))
	}
	return asynq.NewTask(TypeInvoiceReminder, b), opts, nil
}
