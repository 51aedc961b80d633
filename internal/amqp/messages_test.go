package amqp

import (
	"testing"
	"time"
)

func TestExpenseCreatedMessageCodec(t *testing.T) {
	in := &ExpenseCreatedMessage{
		ExpenseID:     42,
		PaidBy:        1,
		AmountCents:   3000,
		ConsumerCount: 2,
		Timestamp:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	body, err := in.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	out, err := ExpenseCreatedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestExpenseCreatedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ExpenseCreatedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
