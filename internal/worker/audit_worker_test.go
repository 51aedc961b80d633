package worker

import (
	"context"
	"testing"
	"time"

	"github.com/Trantoan12022004/chome2/internal/amqp"
	"github.com/Trantoan12022004/chome2/internal/sheets/memory"
	"github.com/Trantoan12022004/chome2/internal/tables"
)

func TestHandleExpenseCreated(t *testing.T) {
	store := memory.New()
	w := NewAuditWorker(tables.NewAudit(store))
	w.now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	msg := amqp.NewExpenseCreatedMessage(7, 2, 1250, 3)
	if err := w.HandleExpenseCreated(context.Background(), msg); err != nil {
		t.Fatalf("HandleExpenseCreated: %v", err)
	}

	entries, err := tables.NewAudit(store).All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Event != "expense.created" {
		t.Errorf("unexpected event %q", e.Event)
	}
	if e.ExpenseID != 7 {
		t.Errorf("unexpected expense id %d", e.ExpenseID)
	}
	if e.Amount != "12.50" {
		t.Errorf("unexpected amount %q", e.Amount)
	}
	if e.Detail != "paid_by=2 consumers=3" {
		t.Errorf("unexpected detail %q", e.Detail)
	}
	if e.CreatedAt != "2025-03-10T12:00:00Z" {
		t.Errorf("unexpected created_at %q", e.CreatedAt)
	}
}
