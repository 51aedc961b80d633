package tables

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/Trantoan12022004/chome2/internal/core"
	"github.com/Trantoan12022004/chome2/internal/sheets"
)

// Expenses is the typed accessor for the expenses table.
type Expenses struct {
	store sheets.RowStore
	mu    sync.Mutex
}

func NewExpenses(store sheets.RowStore) *Expenses {
	return &Expenses{store: store}
}

func (t *Expenses) All(ctx context.Context) ([]core.Expense, error) {
	rows, err := t.store.FetchAll(ctx, sheets.TableExpenses)
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}
	expenses := make([]core.Expense, 0, len(rows))
	for _, r := range rows {
		id, err := parseID(r["id"], sheets.TableExpenses)
		if err != nil {
			return nil, err
		}
		paidBy, err := parseRef(r["paid_by"], sheets.TableExpenses, "paid_by")
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(r["amount"], sheets.TableExpenses)
		if err != nil {
			return nil, err
		}
		quantity := int64(1)
		if raw := r["quantity"]; raw != "" {
			quantity, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("table %s: bad quantity %q", sheets.TableExpenses, raw)
			}
		}
		expenses = append(expenses, core.Expense{
			ID:          id,
			ProductName: r["product_name"],
			Quantity:    quantity,
			PaidBy:      paidBy,
			Amount:      amount,
			ExpenseDate: r["expense_date"],
			Note:        r["note"],
			CreatedAt:   r["created_at"],
		})
	}
	return expenses, nil
}

func (t *Expenses) Append(ctx context.Context, e core.Expense) (core.Expense, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.All(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	e.ID = maxID(existing, func(x core.Expense) int64 { return x.ID }) + 1

	row := sheets.Row{
		"id":           formatID(e.ID),
		"product_name": e.ProductName,
		"quantity":     strconv.FormatInt(e.Quantity, 10),
		"paid_by":      formatID(e.PaidBy),
		"amount":       e.Amount.String(),
		"expense_date": e.ExpenseDate,
		"note":         e.Note,
		"created_at":   e.CreatedAt,
	}
	if err := t.store.Append(ctx, sheets.TableExpenses, row); err != nil {
		return core.Expense{}, fmt.Errorf("append expense: %w", err)
	}
	return e, nil
}
