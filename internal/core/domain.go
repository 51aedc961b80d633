package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format for expense dates.
const DateLayout = "2006-01-02"

type (
	// User is a household member. PasswordHash never leaves the service layer.
	User struct {
		ID           int64
		Name         string
		Email        string
		PasswordHash string
		CreatedAt    string
	}

	// Expense is a single shared purchase paid by one user.
	Expense struct {
		ID          int64
		ProductName string
		Quantity    int64
		PaidBy      int64
		Amount      Money
		ExpenseDate string
		Note        string
		CreatedAt   string
	}

	// ExpenseConsumer links one user to one expense. The set of rows sharing
	// an ExpenseID is the consumer group and determines the split denominator.
	ExpenseConsumer struct {
		ID        int64
		ExpenseID int64
		UserID    int64
		CreatedAt string
	}

	Money struct {
		Cents int64
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyProductName   = errors.New("empty product name")
	ErrProductNameTooLong = errors.New("product name too long (max 200 characters)")
	ErrInvalidPaidBy      = errors.New("invalid paid_by user id")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidExpenseDate = errors.New("invalid expense date")
	ErrMissingConsumers   = errors.New("at least one consumer is required")
	ErrUnknownUser        = errors.New("referenced user does not exist")
	ErrNoConsumers        = errors.New("expense has no consumer rows")

	ErrEmptyName      = errors.New("empty name")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrWeakPassword   = errors.New("password must be at least 8 characters")
	ErrDuplicateEmail = errors.New("email already registered")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ProductName) == "" {
		return ErrEmptyProductName
	}
	if len(e.ProductName) > 200 {
		return ErrProductNameTooLong
	}
	if e.PaidBy <= 0 {
		return ErrInvalidPaidBy
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := time.Parse(DateLayout, e.ExpenseDate); err != nil {
		return ErrInvalidExpenseDate
	}
	return nil
}

// Stamp returns the canonical created_at representation for new rows.
func Stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// IsValidationError reports whether err is caused by bad client input, as
// opposed to a store or data-integrity failure.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidAmount,
		ErrEmptyProductName,
		ErrProductNameTooLong,
		ErrInvalidPaidBy,
		ErrInvalidQuantity,
		ErrInvalidExpenseDate,
		ErrMissingConsumers,
		ErrEmptyName,
		ErrInvalidEmail,
		ErrWeakPassword,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
