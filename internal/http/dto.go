package http

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Trantoan12022004/chome2/internal/core"
)

type userResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// toUserResponse strips the password hash from the wire representation.
func toUserResponse(u core.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []core.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type userRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type expenseResponse struct {
	ID              int64             `json:"id"`
	ProductName     string            `json:"product_name"`
	Quantity        int64             `json:"quantity"`
	Amount          float64           `json:"amount"`
	ExpenseDate     string            `json:"expense_date"`
	Note            string            `json:"note"`
	PaidBy          userRefResponse   `json:"paid_by"`
	Consumers       []userRefResponse `json:"consumers"`
	AmountPerPerson float64           `json:"amount_per_person"`
	CreatedAt       string            `json:"created_at"`
}

func toExpenseResponse(d core.ExpenseDetail) expenseResponse {
	consumers := make([]userRefResponse, 0, len(d.Consumers))
	for _, c := range d.Consumers {
		consumers = append(consumers, userRefResponse{ID: c.ID, Name: c.Name})
	}
	return expenseResponse{
		ID:              d.ID,
		ProductName:     d.ProductName,
		Quantity:        d.Quantity,
		Amount:          d.Amount.Euros(),
		ExpenseDate:     d.ExpenseDate,
		Note:            d.Note,
		PaidBy:          userRefResponse{ID: d.PaidBy.ID, Name: d.PaidBy.Name},
		Consumers:       consumers,
		AmountPerPerson: d.AmountPerPerson,
		CreatedAt:       d.CreatedAt,
	}
}

func toExpenseResponses(details []core.ExpenseDetail) []expenseResponse {
	out := make([]expenseResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toExpenseResponse(d))
	}
	return out
}

type balanceResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Paid    float64 `json:"paid"`
	Owe     float64 `json:"owe"`
	Balance float64 `json:"balance"`
}

func toBalanceResponses(balances []core.UserBalance) []balanceResponse {
	out := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, balanceResponse{
			ID:      b.ID,
			Name:    b.Name,
			Paid:    b.Paid,
			Owe:     b.Owe,
			Balance: b.Balance,
		})
	}
	return out
}

type createExpenseResponse struct {
	Message string          `json:"message"`
	Expense expenseResponse `json:"expense"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// amountCents accepts the amount either as a JSON number of euros or as a
// decimal string ("12.34" or "12,34").
type amountCents int64

func (a *amountCents) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		cents, err := core.ParseDecimalToCents(raw)
		if err != nil {
			return err
		}
		*a = amountCents(cents)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = amountCents(math.Round(v * 100))
	return nil
}

type createExpenseRequest struct {
	ProductName string      `json:"product_name"`
	Quantity    int64       `json:"quantity"`
	PaidBy      int64       `json:"paid_by"`
	Amount      amountCents `json:"amount"`
	ExpenseDate string      `json:"expense_date"`
	Note        string      `json:"note"`
	Consumers   []int64     `json:"consumers"`
}
