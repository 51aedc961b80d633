package tables

import (
	"context"
	"fmt"

	"github.com/Trantoan12022004/chome2/internal/sheets"
)

// AuditEntry is one audit_log row. The table is append-only and unkeyed.
type AuditEntry struct {
	Event     string
	ExpenseID int64
	Amount    string
	Detail    string
	CreatedAt string
}

// Audit is the typed accessor for the audit_log table.
type Audit struct {
	store sheets.RowStore
}

func NewAudit(store sheets.RowStore) *Audit {
	return &Audit{store: store}
}

func (t *Audit) Append(ctx context.Context, e AuditEntry) error {
	row := sheets.Row{
		"event":      e.Event,
		"expense_id": formatID(e.ExpenseID),
		"amount":     e.Amount,
		"detail":     e.Detail,
		"created_at": e.CreatedAt,
	}
	if err := t.store.Append(ctx, sheets.TableAudit, row); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (t *Audit) All(ctx context.Context) ([]AuditEntry, error) {
	rows, err := t.store.FetchAll(ctx, sheets.TableAudit)
	if err != nil {
		return nil, fmt.Errorf("fetch audit log: %w", err)
	}
	entries := make([]AuditEntry, 0, len(rows))
	for _, r := range rows {
		expenseID, err := parseRef(r["expense_id"], sheets.TableAudit, "expense_id")
		if err != nil {
			return nil, err
		}
		entries = append(entries, AuditEntry{
			Event:     r["event"],
			ExpenseID: expenseID,
			Amount:    r["amount"],
			Detail:    r["detail"],
			CreatedAt: r["created_at"],
		})
	}
	return entries, nil
}
