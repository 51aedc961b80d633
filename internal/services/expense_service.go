package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Trantoan12022004/chome2/internal/amqp"
	"github.com/Trantoan12022004/chome2/internal/core"
	"github.com/Trantoan12022004/chome2/internal/tables"

	"golang.org/x/sync/errgroup"
)

// ExpenseService orchestrates expense reads and writes over the row store
// and publishes created events when a publisher is configured.
type ExpenseService struct {
	users     *tables.Users
	expenses  *tables.Expenses
	consumers *tables.Consumers
	publisher *amqp.Client
	now       func() time.Time
}

func NewExpenseService(users *tables.Users, expenses *tables.Expenses, consumers *tables.Consumers, publisher *amqp.Client) *ExpenseService {
	return &ExpenseService{
		users:     users,
		expenses:  expenses,
		consumers: consumers,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateExpenseInput is the validated payload for expense creation.
// Quantity defaults to 1 and Note to "" when left zero-valued.
type CreateExpenseInput struct {
	ProductName string
	Quantity    int64
	PaidBy      int64
	AmountCents int64
	ExpenseDate string
	Note        string
	Consumers   []int64
}

// snapshot holds one coherent read of all three tables.
type snapshot struct {
	users     []core.User
	expenses  []core.Expense
	consumers []core.ExpenseConsumer
}

// fetchAll reads the three tables concurrently. Every call re-reads the
// store; there is no snapshot reuse between requests.
func (s *ExpenseService) fetchAll(ctx context.Context) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.users, err = s.users.All(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.expenses, err = s.expenses.All(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.consumers, err = s.consumers.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// List joins every expense with its payer and consumer group and computes
// the per-person share.
func (s *ExpenseService) List(ctx context.Context) ([]core.ExpenseDetail, error) {
	snap, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return core.BuildExpenseDetails(snap.users, snap.expenses, snap.consumers)
}

// Create validates the input, appends the expense row and then one consumer
// row per consumer. Validation failures append nothing. A consumer-row
// append failure after the expense row is written leaves a partial expense
// behind; there is no rollback against an append-only store.
func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput) (core.ExpenseDetail, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	e := core.Expense{
		ProductName: strings.TrimSpace(in.ProductName),
		Quantity:    in.Quantity,
		PaidBy:      in.PaidBy,
		Amount:      core.Money{Cents: in.AmountCents},
		ExpenseDate: in.ExpenseDate,
		Note:        in.Note,
	}
	if err := e.Validate(); err != nil {
		return core.ExpenseDetail{}, err
	}
	if len(in.Consumers) == 0 {
		return core.ExpenseDetail{}, core.ErrMissingConsumers
	}

	// Resolve the payer and consumers up front so an expense can never refer
	// to a user that does not exist.
	users, err := s.users.All(ctx)
	if err != nil {
		return core.ExpenseDetail{}, err
	}
	byID := make(map[int64]core.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	payer, ok := byID[e.PaidBy]
	if !ok {
		return core.ExpenseDetail{}, fmt.Errorf("%w: payer %d", core.ErrUnknownUser, e.PaidBy)
	}
	refs := make([]core.UserRef, 0, len(in.Consumers))
	for _, id := range in.Consumers {
		u, ok := byID[id]
		if !ok {
			return core.ExpenseDetail{}, fmt.Errorf("%w: consumer %d", core.ErrUnknownUser, id)
		}
		refs = append(refs, core.UserRef{ID: u.ID, Name: u.Name})
	}

	e.CreatedAt = core.Stamp(s.now())
	created, err := s.expenses.Append(ctx, e)
	if err != nil {
		return core.ExpenseDetail{}, err
	}
	if _, err := s.consumers.AppendGroup(ctx, created.ID, in.Consumers, created.CreatedAt); err != nil {
		return core.ExpenseDetail{}, fmt.Errorf("expense %d written, consumer rows incomplete: %w", created.ID, err)
	}

	slog.InfoContext(ctx, "Expense created",
		"id", created.ID,
		"product", created.ProductName,
		"amount_cents", created.Amount.Cents,
		"consumers", len(in.Consumers))

	s.publishCreated(ctx, created, len(in.Consumers))

	return core.ExpenseDetail{
		ID:              created.ID,
		ProductName:     created.ProductName,
		Quantity:        created.Quantity,
		Amount:          created.Amount,
		ExpenseDate:     created.ExpenseDate,
		Note:            created.Note,
		PaidBy:          core.UserRef{ID: payer.ID, Name: payer.Name},
		Consumers:       refs,
		AmountPerPerson: core.Round2(created.Amount.Euros() / float64(len(refs))),
		CreatedAt:       created.CreatedAt,
	}, nil
}

// Balance aggregates paid and owed amounts per user from fresh snapshots.
func (s *ExpenseService) Balance(ctx context.Context) ([]core.UserBalance, error) {
	snap, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return core.ComputeBalances(snap.users, snap.expenses, snap.consumers)
}

// publishCreated emits the expense-created event. Publishing is best effort:
// the expense is already persisted, so failures are logged, not returned.
func (s *ExpenseService) publishCreated(ctx context.Context, e core.Expense, consumerCount int) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewExpenseCreatedMessage(e.ID, e.PaidBy, e.Amount.Cents, consumerCount)
	if err := s.publisher.PublishExpenseCreated(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense created event",
			"expense_id", e.ID, "error", err)
	}
}
