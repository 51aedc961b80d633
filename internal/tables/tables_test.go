package tables

import (
	"context"
	"sync"
	"testing"

	"github.com/Trantoan12022004/chome2/internal/core"
	"github.com/Trantoan12022004/chome2/internal/sheets"
	"github.com/Trantoan12022004/chome2/internal/sheets/memory"
)

func TestUsersAppendAssignsMaxPlusOne(t *testing.T) {
	store := memory.New()
	store.Seed(sheets.TableUsers, []sheets.Row{
		{"id": "1", "name": "A", "email": "a@example.com"},
		{"id": "7", "name": "B", "email": "b@example.com"},
		{"id": "3", "name": "C", "email": "c@example.com"},
	})
	users := NewUsers(store)

	u, err := users.Append(context.Background(), core.User{Name: "D", Email: "d@example.com"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if u.ID != 8 {
		t.Errorf("assigned id = %d, want 8", u.ID)
	}
}

func TestUsersAllRejectsBadID(t *testing.T) {
	store := memory.New()
	store.Seed(sheets.TableUsers, []sheets.Row{{"id": "zero", "name": "A"}})
	if _, err := NewUsers(store).All(context.Background()); err == nil {
		t.Fatal("expected error for unparseable id")
	}
}

func TestConcurrentUserCreatesGetDistinctIDs(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	ctx := context.Background()

	const n = 16
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := users.Append(ctx, core.User{Name: "u", Email: "u@example.com"})
			if err != nil {
				t.Errorf("append: %v", err)
				return
			}
			ids <- u.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d assigned", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct ids, got %d", n, len(seen))
	}
}

func TestExpensesRoundTrip(t *testing.T) {
	store := memory.New()
	expenses := NewExpenses(store)
	ctx := context.Background()

	in := core.Expense{
		ProductName: "Milk",
		Quantity:    2,
		PaidBy:      1,
		Amount:      core.Money{Cents: 1050},
		ExpenseDate: "2024-01-01",
		Note:        "weekly",
		CreatedAt:   "2024-01-01T10:00:00Z",
	}
	created, err := expenses.Append(ctx, in)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("first expense id = %d, want 1", created.ID)
	}

	all, err := expenses.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(all))
	}
	got := all[0]
	if got.Amount.Cents != 1050 || got.Quantity != 2 || got.ProductName != "Milk" || got.Note != "weekly" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestExpensesDefaultQuantity(t *testing.T) {
	store := memory.New()
	store.Seed(sheets.TableExpenses, []sheets.Row{{
		"id": "1", "product_name": "x", "quantity": "", "paid_by": "1",
		"amount": "5.00", "expense_date": "2024-01-01",
	}})
	all, err := NewExpenses(store).All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all[0].Quantity != 1 {
		t.Errorf("blank quantity = %d, want 1", all[0].Quantity)
	}
}

func TestConsumersAppendGroupSequentialIDs(t *testing.T) {
	store := memory.New()
	store.Seed(sheets.TableConsumers, []sheets.Row{
		{"id": "4", "expense_id": "1", "user_id": "1"},
	})
	consumers := NewConsumers(store)

	created, err := consumers.AppendGroup(context.Background(), 2, []int64{1, 2, 3}, "2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("append group: %v", err)
	}
	for i, want := range []int64{5, 6, 7} {
		if created[i].ID != want {
			t.Errorf("consumer %d id = %d, want %d", i, created[i].ID, want)
		}
		if created[i].ExpenseID != 2 {
			t.Errorf("consumer %d expense id = %d, want 2", i, created[i].ExpenseID)
		}
	}
}

func TestAuditRoundTrip(t *testing.T) {
	store := memory.New()
	audit := NewAudit(store)
	ctx := context.Background()

	in := AuditEntry{Event: "expense.created", ExpenseID: 3, Amount: "10.00", Detail: "2 consumers", CreatedAt: "2024-01-01T00:00:00Z"}
	if err := audit.Append(ctx, in); err != nil {
		t.Fatalf("append: %v", err)
	}
	all, err := audit.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 || all[0] != in {
		t.Fatalf("round trip mismatch: %+v", all)
	}
}
