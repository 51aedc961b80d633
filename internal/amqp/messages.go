package amqp

import (
	"encoding/json"
	"time"
)

// ExpenseCreatedMessage announces a freshly appended expense. The consumer
// side only needs the identifiers and the headline figures; anything else is
// re-read from the row store.
type ExpenseCreatedMessage struct {
	ExpenseID     int64     `json:"expense_id"`
	PaidBy        int64     `json:"paid_by"`
	AmountCents   int64     `json:"amount_cents"`
	ConsumerCount int       `json:"consumer_count"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewExpenseCreatedMessage(expenseID, paidBy, amountCents int64, consumerCount int) *ExpenseCreatedMessage {
	return &ExpenseCreatedMessage{
		ExpenseID:     expenseID,
		PaidBy:        paidBy,
		AmountCents:   amountCents,
		ConsumerCount: consumerCount,
		Timestamp:     time.Now(),
	}
}

func (m *ExpenseCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseCreatedMessageFromJSON(data []byte) (*ExpenseCreatedMessage, error) {
	var msg ExpenseCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
