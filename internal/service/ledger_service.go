package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/budgetbook/internal/middleware"
	"github.com/mmynk/budgetbook/internal/models"
	"github.com/mmynk/budgetbook/internal/report"
	"github.com/mmynk/budgetbook/internal/storage"
)

// LedgerService exposes transactions, budgets and reports over Connect.
type LedgerService struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, logger *slog.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logger, now: time.Now}
}

// parseInput converts a wire transaction into the store's input type.
func parseInput(in TransactionInput) (models.NewTransaction, error) {
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return models.NewTransaction{}, connect.NewError(connect.CodeInvalidArgument, err)
	}
	kind, err := models.ParseKind(in.Kind)
	if err != nil {
		return models.NewTransaction{}, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return models.NewTransaction{
		Date:        date,
		Amount:      in.Amount,
		Kind:        kind,
		Category:    in.Category,
		Description: in.Description,
	}, nil
}

// AddTransaction records a new transaction.
func (s *LedgerService) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[AddTransactionResponse], error) {
	in, err := parseInput(req.Msg.Transaction)
	if err != nil {
		return nil, err
	}

	tx, err := s.store.AddTransaction(ctx, in)
	if err != nil {
		return nil, toConnectError("add transaction", err)
	}

	s.logger.Info("Transaction added",
		"id", tx.ID,
		"kind", tx.Kind,
		"user_id", middleware.GetUserID(ctx),
	)
	return connect.NewResponse(&AddTransactionResponse{Transaction: toWireTransaction(*tx)}), nil
}

// UpdateTransaction replaces the fields of an existing transaction.
func (s *LedgerService) UpdateTransaction(ctx context.Context, req *connect.Request[UpdateTransactionRequest]) (*connect.Response[UpdateTransactionResponse], error) {
	in, err := parseInput(req.Msg.Transaction)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateTransaction(ctx, req.Msg.ID, in); err != nil {
		return nil, toConnectError("update transaction", err)
	}
	s.logger.Info("Transaction updated", "id", req.Msg.ID)
	return connect.NewResponse(&UpdateTransactionResponse{}), nil
}

// DeleteTransaction removes a transaction.
func (s *LedgerService) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	if err := s.store.DeleteTransaction(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError("delete transaction", err)
	}
	s.logger.Info("Transaction deleted", "id", req.Msg.ID)
	return connect.NewResponse(&DeleteTransactionResponse{}), nil
}

// ListTransactions returns the month's transactions, most recent first.
func (s *LedgerService) ListTransactions(ctx context.Context, req *connect.Request[PeriodRequest]) (*connect.Response[ListTransactionsResponse], error) {
	txs, err := s.store.GetTransactions(ctx, req.Msg.Month, req.Msg.Year)
	if err != nil {
		return nil, toConnectError("list transactions", err)
	}

	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toWireTransaction(tx))
	}
	return connect.NewResponse(&ListTransactionsResponse{Transactions: out}), nil
}

// UpsertBudget sets the budget of a month.
func (s *LedgerService) UpsertBudget(ctx context.Context, req *connect.Request[UpsertBudgetRequest]) (*connect.Response[UpsertBudgetResponse], error) {
	if err := s.store.UpsertBudget(ctx, req.Msg.Month, req.Msg.Year, req.Msg.Amount); err != nil {
		return nil, toConnectError("upsert budget", err)
	}
	s.logger.Info("Budget set", "month", req.Msg.Month, "year", req.Msg.Year)
	return connect.NewResponse(&UpsertBudgetResponse{}), nil
}

// ListBudgets returns every budget, latest period first.
func (s *LedgerService) ListBudgets(ctx context.Context, _ *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error) {
	budgets, err := s.store.GetBudgets(ctx)
	if err != nil {
		return nil, toConnectError("list budgets", err)
	}

	out := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, Budget{ID: b.ID, Month: b.Month, Year: b.Year, Amount: b.Amount})
	}
	return connect.NewResponse(&ListBudgetsResponse{Budgets: out}), nil
}

// GetBudget returns the budget of a month, if any.
func (s *LedgerService) GetBudget(ctx context.Context, req *connect.Request[PeriodRequest]) (*connect.Response[GetBudgetResponse], error) {
	amount, err := s.store.GetBudgetForMonth(ctx, req.Msg.Month, req.Msg.Year)
	if err != nil {
		return nil, toConnectError("get budget", err)
	}
	return connect.NewResponse(&GetBudgetResponse{Amount: amount}), nil
}

// GetMonthTotals returns income, expense and net of a month.
func (s *LedgerService) GetMonthTotals(ctx context.Context, req *connect.Request[PeriodRequest]) (*connect.Response[MonthTotalsResponse], error) {
	totals, err := s.store.GetMonthTotals(ctx, req.Msg.Month, req.Msg.Year)
	if err != nil {
		return nil, toConnectError("get month totals", err)
	}
	return connect.NewResponse(&MonthTotalsResponse{
		Income:  totals.Income,
		Expense: totals.Expense,
		Net:     report.Net(totals),
	}), nil
}

// GetPerformance compares a month's spending with its budget.
func (s *LedgerService) GetPerformance(ctx context.Context, req *connect.Request[PeriodRequest]) (*connect.Response[PerformanceResponse], error) {
	period := models.Period{Month: req.Msg.Month, Year: req.Msg.Year}
	view, err := report.Performance(ctx, s.store, period)
	if err != nil {
		return nil, toConnectError("get performance", err)
	}
	resp := toWirePerformance(view)
	return connect.NewResponse(&resp), nil
}

// GetDashboard summarizes the current month.
func (s *LedgerService) GetDashboard(ctx context.Context, _ *connect.Request[DashboardRequest]) (*connect.Response[Summary], error) {
	summary, err := report.Dashboard(ctx, s.store, s.now())
	if err != nil {
		return nil, toConnectError("get dashboard", err)
	}
	resp := toWireSummary(summary)
	return connect.NewResponse(&resp), nil
}

// GetYearOverview summarizes every month of a year.
func (s *LedgerService) GetYearOverview(ctx context.Context, req *connect.Request[YearOverviewRequest]) (*connect.Response[YearOverviewResponse], error) {
	view, err := report.Year(ctx, s.store, req.Msg.Year)
	if err != nil {
		return nil, toConnectError("get year overview", err)
	}

	months := make([]Summary, 0, len(view.Months))
	for _, m := range view.Months {
		months = append(months, toWireSummary(m))
	}
	return connect.NewResponse(&YearOverviewResponse{
		Year:    view.Year,
		Months:  months,
		Income:  view.Income,
		Expense: view.Expense,
		Net:     view.Net,
	}), nil
}
