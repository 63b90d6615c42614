package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mmynk/budgetbook/internal/models"
	"github.com/mmynk/budgetbook/internal/storage"
)

// UpsertBudget inserts the budget for (month, year) or replaces its amount.
func (s *SQLiteStore) UpsertBudget(ctx context.Context, month, year int, amount float64) error {
	if err := storage.ValidatePeriod(month, year); err != nil {
		return err
	}
	if err := storage.ValidateAmount(amount); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (month, year, amount)
		VALUES (?, ?, ?)
		ON CONFLICT(month, year) DO UPDATE SET amount = excluded.amount`,
		month, year, amount,
	)
	if err != nil {
		return storage.Wrap("upsert budget", err)
	}

	slog.DebugContext(ctx, "Budget saved", "month", month, "year", year, "amount", amount)
	return nil
}

// GetBudgets returns every budget ordered by year, month and id, latest first.
func (s *SQLiteStore) GetBudgets(ctx context.Context) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, month, year, amount
		FROM budgets
		ORDER BY year DESC, month DESC, id DESC`)
	if err != nil {
		return nil, storage.Wrap("list budgets", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.Month, &b.Year, &b.Amount); err != nil {
			return nil, storage.Wrap("scan budget", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("iterate budgets", err)
	}

	return budgets, nil
}

// GetBudgetForMonth returns the budget amount of the month, or nil when none is set.
func (s *SQLiteStore) GetBudgetForMonth(ctx context.Context, month, year int) (*float64, error) {
	if err := storage.ValidatePeriod(month, year); err != nil {
		return nil, err
	}

	var amount float64
	err := s.db.QueryRowContext(ctx,
		"SELECT amount FROM budgets WHERE month = ? AND year = ?",
		month, year,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storage.Wrap("get budget", err)
	}

	return &amount, nil
}

// GetPerformanceFor pairs the month's expense total with its budget.
// A month without a budget reports Budgeted as 0.
func (s *SQLiteStore) GetPerformanceFor(ctx context.Context, month, year int) (models.Performance, error) {
	totals, err := s.GetMonthTotals(ctx, month, year)
	if err != nil {
		return models.Performance{}, err
	}
	budget, err := s.GetBudgetForMonth(ctx, month, year)
	if err != nil {
		return models.Performance{}, err
	}

	perf := models.Performance{Spent: totals.Expense}
	if budget != nil {
		perf.Budgeted = *budget
	}
	return perf, nil
}
