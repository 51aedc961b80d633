package core

import "fmt"

// UserRef is the minimal user projection embedded in expense details.
type UserRef struct {
	ID   int64
	Name string
}

// ExpenseDetail is an expense joined with its payer and consumer group.
// AmountPerPerson is computed on read, never stored.
type ExpenseDetail struct {
	ID              int64
	ProductName     string
	Quantity        int64
	Amount          Money
	ExpenseDate     string
	Note            string
	PaidBy          UserRef
	Consumers       []UserRef
	AmountPerPerson float64
	CreatedAt       string
}

// UserBalance is one user's net position. Positive balance means others
// owe them. All monetary fields are rounded to 2 decimals.
type UserBalance struct {
	ID      int64
	Name    string
	Paid    float64
	Owe     float64
	Balance float64
}

// BuildExpenseDetails joins fresh snapshots of the three tables. A payer or
// consumer id with no matching user row, or an expense with an empty consumer
// group, is an explicit error rather than a silent skip.
func BuildExpenseDetails(users []User, expenses []Expense, consumers []ExpenseConsumer) ([]ExpenseDetail, error) {
	byID := usersByID(users)
	group := consumersByExpense(consumers)

	details := make([]ExpenseDetail, 0, len(expenses))
	for _, e := range expenses {
		payer, ok := byID[e.PaidBy]
		if !ok {
			return nil, fmt.Errorf("expense %d payer: %w (user %d)", e.ID, ErrUnknownUser, e.PaidBy)
		}
		members := group[e.ID]
		if len(members) == 0 {
			return nil, fmt.Errorf("expense %d: %w", e.ID, ErrNoConsumers)
		}
		refs := make([]UserRef, 0, len(members))
		for _, c := range members {
			u, ok := byID[c.UserID]
			if !ok {
				return nil, fmt.Errorf("expense %d consumer: %w (user %d)", e.ID, ErrUnknownUser, c.UserID)
			}
			refs = append(refs, UserRef{ID: u.ID, Name: u.Name})
		}
		details = append(details, ExpenseDetail{
			ID:              e.ID,
			ProductName:     e.ProductName,
			Quantity:        e.Quantity,
			Amount:          e.Amount,
			ExpenseDate:     e.ExpenseDate,
			Note:            e.Note,
			PaidBy:          UserRef{ID: payer.ID, Name: payer.Name},
			Consumers:       refs,
			AmountPerPerson: Round2(e.Amount.Euros() / float64(len(members))),
			CreatedAt:       e.CreatedAt,
		})
	}
	return details, nil
}

// ComputeBalances aggregates paid and owed amounts per user.
//
// paid(U) sums the amount of every expense U paid for; owe(U) adds an even
// per-person share of every expense U consumed. balance = paid - owe. The
// three monetary outputs are rounded to 2 decimals; shares accumulate
// unrounded so the consumer group's contributions sum back to the expense
// amount up to rounding.
func ComputeBalances(users []User, expenses []Expense, consumers []ExpenseConsumer) ([]UserBalance, error) {
	byID := usersByID(users)
	group := consumersByExpense(consumers)

	paid := make(map[int64]int64, len(users))
	owe := make(map[int64]float64, len(users))

	for _, e := range expenses {
		if _, ok := byID[e.PaidBy]; !ok {
			return nil, fmt.Errorf("expense %d payer: %w (user %d)", e.ID, ErrUnknownUser, e.PaidBy)
		}
		paid[e.PaidBy] += e.Amount.Cents

		members := group[e.ID]
		if len(members) == 0 {
			return nil, fmt.Errorf("expense %d: %w", e.ID, ErrNoConsumers)
		}
		share := e.Amount.Euros() / float64(len(members))
		for _, c := range members {
			if _, ok := byID[c.UserID]; !ok {
				return nil, fmt.Errorf("expense %d consumer: %w (user %d)", e.ID, ErrUnknownUser, c.UserID)
			}
			owe[c.UserID] += share
		}
	}

	// Balances in users-table append order.
	out := make([]UserBalance, 0, len(users))
	for _, u := range users {
		p := Round2(Money{Cents: paid[u.ID]}.Euros())
		o := Round2(owe[u.ID])
		out = append(out, UserBalance{
			ID:      u.ID,
			Name:    u.Name,
			Paid:    p,
			Owe:     o,
			Balance: Round2(p - o),
		})
	}
	return out, nil
}

func usersByID(users []User) map[int64]User {
	m := make(map[int64]User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m
}

func consumersByExpense(consumers []ExpenseConsumer) map[int64][]ExpenseConsumer {
	m := make(map[int64][]ExpenseConsumer, len(consumers))
	for _, c := range consumers {
		m[c.ExpenseID] = append(m[c.ExpenseID], c)
	}
	return m
}
