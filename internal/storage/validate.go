package storage

import (
	"math"
	"strings"

	"github.com/mmynk/budgetbook/internal/models"
)

const (
	minYear = 1000
	maxYear = 9999
)

// ValidatePeriod checks month is 1-12 and year has four digits.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return invalid("month", "must be between 1 and 12")
	}
	if year < minYear || year > maxYear {
		return invalid("year", "must be a four-digit year")
	}
	return nil
}

// ValidateAmount checks amount is a finite positive number.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return invalid("amount", "must be a number")
	}
	if amount <= 0 {
		return invalid("amount", "must be greater than zero")
	}
	return nil
}

// ValidateTransaction checks the invariants of a transaction before it is written.
func ValidateTransaction(tx models.NewTransaction) error {
	if tx.Date.IsZero() {
		return invalid("date", "is required")
	}
	if y := tx.Date.Year(); y < minYear || y > maxYear {
		return invalid("date", "year must have four digits")
	}
	if err := ValidateAmount(tx.Amount); err != nil {
		return err
	}
	if !tx.Kind.Valid() {
		return invalid("kind", "must be Income or Expense")
	}
	if strings.TrimSpace(tx.Category) == "" {
		return invalid("category", "is required")
	}
	return nil
}

// ValidateCredentials checks username and password are present.
func ValidateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return invalid("username", "is required")
	}
	if password == "" {
		return invalid("password", "is required")
	}
	return nil
}
