// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/budgetbook/internal/models"
)

// Store defines the data-access operations of the ledger.
// This abstraction allows swapping storage backends without changing the
// reporting or service layers.
//
// Every method is one self-contained unit of work. Mutating methods validate
// their input and return a *ValidationError wrapping ErrValidation on bad
// input; database failures wrap ErrStorage.
type Store interface {
	// Initialize creates the schema if needed and provisions the default
	// account when no user exists. Safe to call on every start.
	Initialize(ctx context.Context) error

	// ValidateLogin reports whether username and password match a stored user.
	// An unknown username is reported as false, exactly like a wrong password.
	ValidateLogin(ctx context.Context, username, password string) (bool, error)

	// CreateUser provisions an account. Returns ErrUsernameTaken on duplicates.
	CreateUser(ctx context.Context, username, password string) (*models.User, error)

	// GetUserByUsername returns nil and no error when the user does not exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// AddTransaction inserts a transaction and returns it with its assigned ID.
	AddTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error)

	// UpdateTransaction replaces all mutable fields. Returns ErrNotFound for an unknown id.
	UpdateTransaction(ctx context.Context, id int64, tx models.NewTransaction) error

	// DeleteTransaction removes a transaction. Returns ErrNotFound for an unknown id.
	DeleteTransaction(ctx context.Context, id int64) error

	// GetTransaction retrieves a transaction by ID.
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)

	// GetTransactions lists the transactions of a month, most recent first.
	GetTransactions(ctx context.Context, month, year int) ([]models.Transaction, error)

	// GetBudgets lists all budgets, latest period first.
	GetBudgets(ctx context.Context) ([]models.Budget, error)

	// UpsertBudget sets the budget of a month, replacing any existing amount.
	UpsertBudget(ctx context.Context, month, year int, amount float64) error

	// GetBudgetForMonth returns nil when no budget is set for the month.
	GetBudgetForMonth(ctx context.Context, month, year int) (*float64, error)

	// GetMonthTotals sums the month's transactions by kind.
	GetMonthTotals(ctx context.Context, month, year int) (models.MonthTotals, error)

	// GetPerformanceFor returns the month's expense total and budget (0 when unset).
	GetPerformanceFor(ctx context.Context, month, year int) (models.Performance, error)

	// Close releases any resources held by the store.
	Close() error
}
