package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind tells whether a transaction adds to or subtracts from the balance.
type Kind string

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

// DateLayout is the persisted and displayed form of a transaction date.
const DateLayout = "2006-01-02"

// Transaction represents a single income or expense entry.
type Transaction struct {
	// ID is the unique, store-assigned identifier.
	// Higher IDs were inserted later.
	ID int64

	// Date is the calendar day of the transaction, at UTC midnight.
	Date time.Time

	// Amount is always positive; Kind carries the sign.
	Amount float64

	// Kind is Income or Expense.
	Kind Kind

	// Category is a free-text label (e.g., "Groceries", "Salary").
	Category string

	// Description is optional. A nil Description means none was given;
	// blank input is normalized to nil by the store.
	Description *string
}

// NewTransaction carries the mutable fields of a Transaction.
// It is the input of both add and update operations.
type NewTransaction struct {
	Date        time.Time
	Amount      float64
	Kind        Kind
	Category    string
	Description string
}

// Day truncates t to its calendar day at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// NormalizeDescription trims s and maps blank input to nil.
func NormalizeDescription(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
