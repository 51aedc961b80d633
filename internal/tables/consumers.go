package tables

import (
	"context"
	"fmt"
	"sync"

	"github.com/Trantoan12022004/chome2/internal/core"
	"github.com/Trantoan12022004/chome2/internal/sheets"
)

// Consumers is the typed accessor for the expense_consumers table.
type Consumers struct {
	store sheets.RowStore
	mu    sync.Mutex
}

func NewConsumers(store sheets.RowStore) *Consumers {
	return &Consumers{store: store}
}

func (t *Consumers) All(ctx context.Context) ([]core.ExpenseConsumer, error) {
	rows, err := t.store.FetchAll(ctx, sheets.TableConsumers)
	if err != nil {
		return nil, fmt.Errorf("fetch expense consumers: %w", err)
	}
	consumers := make([]core.ExpenseConsumer, 0, len(rows))
	for _, r := range rows {
		id, err := parseID(r["id"], sheets.TableConsumers)
		if err != nil {
			return nil, err
		}
		expenseID, err := parseRef(r["expense_id"], sheets.TableConsumers, "expense_id")
		if err != nil {
			return nil, err
		}
		userID, err := parseRef(r["user_id"], sheets.TableConsumers, "user_id")
		if err != nil {
			return nil, err
		}
		consumers = append(consumers, core.ExpenseConsumer{
			ID:        id,
			ExpenseID: expenseID,
			UserID:    userID,
			CreatedAt: r["created_at"],
		})
	}
	return consumers, nil
}

// AppendGroup writes one consumer row per user id, assigning sequential ids
// start, start+1, ... computed under the table lock.
func (t *Consumers) AppendGroup(ctx context.Context, expenseID int64, userIDs []int64, createdAt string) ([]core.ExpenseConsumer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.All(ctx)
	if err != nil {
		return nil, err
	}
	next := maxID(existing, func(x core.ExpenseConsumer) int64 { return x.ID }) + 1

	created := make([]core.ExpenseConsumer, 0, len(userIDs))
	for i, userID := range userIDs {
		c := core.ExpenseConsumer{
			ID:        next + int64(i),
			ExpenseID: expenseID,
			UserID:    userID,
			CreatedAt: createdAt,
		}
		row := sheets.Row{
			"id":         formatID(c.ID),
			"expense_id": formatID(c.ExpenseID),
			"user_id":    formatID(c.UserID),
			"created_at": c.CreatedAt,
		}
		if err := t.store.Append(ctx, sheets.TableConsumers, row); err != nil {
			// No rollback: the expense row and any earlier consumer rows stay
			// behind. Known partial-write hazard of an append-only store.
			return nil, fmt.Errorf("append consumer %d/%d: %w", i+1, len(userIDs), err)
		}
		created = append(created, c)
	}
	return created, nil
}
