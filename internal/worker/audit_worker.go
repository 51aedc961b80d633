// Package worker turns expense-created events into audit_log rows. It runs
// in its own process and shares nothing with the HTTP server except the row
// store and the queue.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Trantoan12022004/chome2/internal/amqp"
	"github.com/Trantoan12022004/chome2/internal/core"
	"github.com/Trantoan12022004/chome2/internal/tables"
)

const eventExpenseCreated = "expense.created"

// AuditWorker appends one audit row per consumed expense-created message.
type AuditWorker struct {
	audit *tables.Audit
	now   func() time.Time
}

func NewAuditWorker(audit *tables.Audit) *AuditWorker {
	return &AuditWorker{audit: audit, now: time.Now}
}

// HandleExpenseCreated records the event. A store failure is returned so the
// consumer nacks and the message is redelivered.
func (w *AuditWorker) HandleExpenseCreated(ctx context.Context, msg *amqp.ExpenseCreatedMessage) error {
	entry := tables.AuditEntry{
		Event:     eventExpenseCreated,
		ExpenseID: msg.ExpenseID,
		Amount:    core.Money{Cents: msg.AmountCents}.String(),
		Detail:    fmt.Sprintf("paid_by=%d consumers=%d", msg.PaidBy, msg.ConsumerCount),
		CreatedAt: core.Stamp(w.now()),
	}
	if err := w.audit.Append(ctx, entry); err != nil {
		return fmt.Errorf("record expense created: %w", err)
	}

	slog.InfoContext(ctx, "Audit entry recorded",
		"event", entry.Event,
		"expense_id", entry.ExpenseID,
		"amount", entry.Amount)
	return nil
}
