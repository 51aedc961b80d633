package tables

import (
	"context"
	"fmt"
	"sync"

	"github.com/Trantoan12022004/chome2/internal/core"
	"github.com/Trantoan12022004/chome2/internal/sheets"
)

// Users is the typed accessor for the users table.
type Users struct {
	store sheets.RowStore
	mu    sync.Mutex
}

func NewUsers(store sheets.RowStore) *Users {
	return &Users{store: store}
}

// All fetches a fresh snapshot of every user row, in append order.
func (t *Users) All(ctx context.Context) ([]core.User, error) {
	rows, err := t.store.FetchAll(ctx, sheets.TableUsers)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	users := make([]core.User, 0, len(rows))
	for _, r := range rows {
		id, err := parseID(r["id"], sheets.TableUsers)
		if err != nil {
			return nil, err
		}
		users = append(users, core.User{
			ID:           id,
			Name:         r["name"],
			Email:        r["email"],
			PasswordHash: r["password"],
			CreatedAt:    r["created_at"],
		})
	}
	return users, nil
}

// Append assigns the next id and writes the row. The id is recomputed from a
// fresh fetch under the table lock, so in-process creates are serialized.
func (t *Users) Append(ctx context.Context, u core.User) (core.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.All(ctx)
	if err != nil {
		return core.User{}, err
	}
	u.ID = maxID(existing, func(x core.User) int64 { return x.ID }) + 1

	row := sheets.Row{
		"id":         formatID(u.ID),
		"name":       u.Name,
		"email":      u.Email,
		"password":   u.PasswordHash,
		"created_at": u.CreatedAt,
	}
	if err := t.store.Append(ctx, sheets.TableUsers, row); err != nil {
		return core.User{}, fmt.Errorf("append user: %w", err)
	}
	return u, nil
}
