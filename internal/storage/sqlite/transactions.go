package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/budgetbook/internal/models"
	"github.com/mmynk/budgetbook/internal/storage"
)

// AddTransaction validates and inserts a transaction.
// The description is trimmed, and blank descriptions are stored as NULL.
func (s *SQLiteStore) AddTransaction(ctx context.Context, in models.NewTransaction) (*models.Transaction, error) {
	if err := storage.ValidateTransaction(in); err != nil {
		return nil, err
	}
	tx := normalize(in)

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (date, amount, kind, category, description) VALUES (?, ?, ?, ?, ?)",
		tx.Date.Format(models.DateLayout), tx.Amount, string(tx.Kind), tx.Category, nullable(tx.Description),
	)
	if err != nil {
		return nil, storage.Wrap("insert transaction", err)
	}

	tx.ID, err = res.LastInsertId()
	if err != nil {
		return nil, storage.Wrap("read transaction id", err)
	}

	slog.DebugContext(ctx, "Transaction added", "id", tx.ID, "kind", tx.Kind, "date", tx.Date.Format(models.DateLayout))
	return tx, nil
}

// UpdateTransaction replaces every mutable field of the transaction with the given id.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, id int64, in models.NewTransaction) error {
	if err := storage.ValidateTransaction(in); err != nil {
		return err
	}
	tx := normalize(in)

	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, amount = ?, kind = ?, category = ?, description = ?
		WHERE id = ?`,
		tx.Date.Format(models.DateLayout), tx.Amount, string(tx.Kind), tx.Category, nullable(tx.Description), id,
	)
	if err != nil {
		return storage.Wrap("update transaction", err)
	}
	if err := expectOneRow(res, "transaction", id); err != nil {
		return err
	}

	slog.DebugContext(ctx, "Transaction updated", "id", id)
	return nil
}

// DeleteTransaction removes a transaction by ID.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return storage.Wrap("delete transaction", err)
	}
	if err := expectOneRow(res, "transaction", id); err != nil {
		return err
	}

	slog.DebugContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// GetTransaction retrieves a transaction by ID.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, date, amount, kind, category, description FROM transactions WHERE id = ?",
		id,
	)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// GetTransactions returns the transactions dated within [first of month, first of next month),
// ordered by date then id, most recent first.
func (s *SQLiteStore) GetTransactions(ctx context.Context, month, year int) ([]models.Transaction, error) {
	if err := storage.ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	start, end := dateRange(month, year)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, kind, category, description
		FROM transactions
		WHERE date >= ? AND date < ?
		ORDER BY date DESC, id DESC`,
		start, end,
	)
	if err != nil {
		return nil, storage.Wrap("list transactions", err)
	}
	defer rows.Close()

	var result []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("iterate transactions", err)
	}

	return result, nil
}

// GetMonthTotals sums income and expense amounts within the month.
func (s *SQLiteStore) GetMonthTotals(ctx context.Context, month, year int) (models.MonthTotals, error) {
	var totals models.MonthTotals
	if err := storage.ValidatePeriod(month, year); err != nil {
		return totals, err
	}
	start, end := dateRange(month, year)

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'Income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'Expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE date >= ? AND date < ?`,
		start, end,
	).Scan(&totals.Income, &totals.Expense)
	if err != nil {
		return models.MonthTotals{}, storage.Wrap("sum transactions", err)
	}

	return totals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		tx          models.Transaction
		date        string
		kind        string
		description sql.NullString
	)
	err := row.Scan(&tx.ID, &date, &tx.Amount, &kind, &tx.Category, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, storage.Wrap("scan transaction", err)
	}

	tx.Date, err = models.ParseDate(date)
	if err != nil {
		return nil, storage.Wrap("parse transaction date", err)
	}
	tx.Kind = models.Kind(kind)
	if description.Valid {
		tx.Description = &description.String
	}
	return &tx, nil
}

func normalize(in models.NewTransaction) *models.Transaction {
	return &models.Transaction{
		Date:        models.Day(in.Date),
		Amount:      in.Amount,
		Kind:        in.Kind,
		Category:    strings.TrimSpace(in.Category),
		Description: models.NormalizeDescription(in.Description),
	}
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// dateRange returns the half-open bounds of a month in the persisted date format.
func dateRange(month, year int) (string, string) {
	p := models.Period{Month: month, Year: year}
	return p.Start().Format(models.DateLayout), p.End().Format(models.DateLayout)
}

func expectOneRow(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storage.Wrap("read affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, storage.ErrNotFound)
	}
	return nil
}
