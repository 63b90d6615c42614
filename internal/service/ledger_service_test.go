package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/budgetbook/internal/auth"
	"github.com/mmynk/budgetbook/internal/middleware"
	"github.com/mmynk/budgetbook/internal/storage/sqlite"
)

type testServer struct {
	auth   *AuthClient
	ledger *LedgerClient
	token  string
}

// setupTestServer serves both services over a fresh database and logs in as
// the default account.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.Open(context.Background(), sqlite.Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret-key-0123456789", time.Hour)

	authSvc := NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, logger)
	ledgerSvc := NewLedgerService(store, logger)
	ledgerSvc.now = func() time.Time { return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC) }

	authPath, authHandler := NewAuthServiceHandler(authSvc)
	ledgerPath, ledgerHandler := NewLedgerServiceHandler(ledgerSvc,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)),
	)

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(ledgerPath, ledgerHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	ts := &testServer{
		auth:   NewAuthClient(http.DefaultClient, server.URL),
		ledger: NewLedgerClient(http.DefaultClient, server.URL),
	}

	resp, err := ts.auth.Login.CallUnary(context.Background(), connect.NewRequest(&LoginRequest{
		Username: sqlite.DefaultUsername,
		Password: sqlite.DefaultPassword,
	}))
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	ts.token = resp.Msg.Token
	return ts
}

// authed wraps msg in a request carrying the session token.
func authed[T any](ts *testServer, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+ts.token)
	return req
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("expected code %v, got %v (%v)", code, got, err)
	}
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	if ts.token == "" {
		t.Fatal("expected a token")
	}

	tests := []struct {
		name     string
		username string
		password string
		code     connect.Code
	}{
		{"wrong password", "admin", "nope", connect.CodeUnauthenticated},
		{"unknown user", "ghost", "admin123", connect.CodeUnauthenticated},
		{"empty password", "admin", "", connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.auth.Login.CallUnary(ctx, connect.NewRequest(&LoginRequest{
				Username: tt.username,
				Password: tt.password,
			}))
			wantCode(t, err, tt.code)
		})
	}
}

func TestLedgerRequiresToken(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	_, err := ts.ledger.ListBudgets.CallUnary(ctx, connect.NewRequest(&ListBudgetsRequest{}))
	wantCode(t, err, connect.CodeUnauthenticated)

	req := connect.NewRequest(&ListBudgetsRequest{})
	req.Header().Set("Authorization", "Bearer not-a-token")
	_, err = ts.ledger.ListBudgets.CallUnary(ctx, req)
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestTransactionLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	added, err := ts.ledger.AddTransaction.CallUnary(ctx, authed(ts, &AddTransactionRequest{
		Transaction: TransactionInput{
			Date:        "2026-03-02",
			Amount:      42.5,
			Kind:        "expense",
			Category:    "Groceries",
			Description: "weekly shop",
		},
	}))
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	tx := added.Msg.Transaction
	if tx.ID == 0 {
		t.Error("expected an assigned ID")
	}
	if tx.Kind != "Expense" {
		t.Errorf("expected kind Expense, got %q", tx.Kind)
	}
	if tx.Description == nil || *tx.Description != "weekly shop" {
		t.Errorf("unexpected description %v", tx.Description)
	}

	_, err = ts.ledger.UpdateTransaction.CallUnary(ctx, authed(ts, &UpdateTransactionRequest{
		ID: tx.ID,
		Transaction: TransactionInput{
			Date:     "2026-03-03",
			Amount:   50,
			Kind:     "Expense",
			Category: "Groceries",
		},
	}))
	if err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}

	list, err := ts.ledger.ListTransactions.CallUnary(ctx, authed(ts, &PeriodRequest{Month: 3, Year: 2026}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(list.Msg.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(list.Msg.Transactions))
	}
	got := list.Msg.Transactions[0]
	if got.Date != "2026-03-03" || got.Amount != 50 || got.Description != nil {
		t.Errorf("update not applied: %+v", got)
	}

	if _, err := ts.ledger.DeleteTransaction.CallUnary(ctx, authed(ts, &DeleteTransactionRequest{ID: tx.ID})); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	_, err = ts.ledger.DeleteTransaction.CallUnary(ctx, authed(ts, &DeleteTransactionRequest{ID: tx.ID}))
	wantCode(t, err, connect.CodeNotFound)
}

func TestAddTransactionInvalid(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	valid := TransactionInput{Date: "2026-03-02", Amount: 10, Kind: "Income", Category: "Salary"}

	tests := []struct {
		name   string
		mutate func(in *TransactionInput)
	}{
		{"bad date", func(in *TransactionInput) { in.Date = "03/02/2026" }},
		{"bad kind", func(in *TransactionInput) { in.Kind = "Transfer" }},
		{"zero amount", func(in *TransactionInput) { in.Amount = 0 }},
		{"negative amount", func(in *TransactionInput) { in.Amount = -5 }},
		{"blank category", func(in *TransactionInput) { in.Category = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := ts.ledger.AddTransaction.CallUnary(ctx, authed(ts, &AddTransactionRequest{Transaction: in}))
			wantCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestUpdateUnknownTransaction(t *testing.T) {
	ts := setupTestServer(t)

	_, err := ts.ledger.UpdateTransaction.CallUnary(context.Background(), authed(ts, &UpdateTransactionRequest{
		ID:          999,
		Transaction: TransactionInput{Date: "2026-03-02", Amount: 1, Kind: "Income", Category: "Gift"},
	}))
	wantCode(t, err, connect.CodeNotFound)
}

func TestBudgetsAndReports(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	add := func(date string, amount float64, kind string) {
		t.Helper()
		_, err := ts.ledger.AddTransaction.CallUnary(ctx, authed(ts, &AddTransactionRequest{
			Transaction: TransactionInput{Date: date, Amount: amount, Kind: kind, Category: "Misc"},
		}))
		if err != nil {
			t.Fatalf("AddTransaction failed: %v", err)
		}
	}
	add("2026-03-01", 1000, "Income")
	add("2026-03-10", 300.25, "Expense")
	add("2026-03-31", 200, "Expense")
	add("2026-04-01", 75, "Expense")

	t.Run("no budget", func(t *testing.T) {
		resp, err := ts.ledger.GetBudget.CallUnary(ctx, authed(ts, &PeriodRequest{Month: 3, Year: 2026}))
		if err != nil {
			t.Fatalf("GetBudget failed: %v", err)
		}
		if resp.Msg.Amount != nil {
			t.Errorf("expected no budget, got %v", *resp.Msg.Amount)
		}

		perf, err := ts.ledger.GetPerformance.CallUnary(ctx, authed(ts, &PeriodRequest{Month: 3, Year: 2026}))
		if err != nil {
			t.Fatalf("GetPerformance failed: %v", err)
		}
		if perf.Msg.Status != "no budget" {
			t.Errorf("expected no budget, got %q", perf.Msg.Status)
		}
	})

	if _, err := ts.ledger.UpsertBudget.CallUnary(ctx, authed(ts, &UpsertBudgetRequest{Month: 3, Year: 2026, Amount: 400})); err != nil {
		t.Fatalf("UpsertBudget failed: %v", err)
	}
	if _, err := ts.ledger.UpsertBudget.CallUnary(ctx, authed(ts, &UpsertBudgetRequest{Month: 4, Year: 2026, Amount: 600})); err != nil {
		t.Fatalf("UpsertBudget failed: %v", err)
	}

	t.Run("invalid budget", func(t *testing.T) {
		_, err := ts.ledger.UpsertBudget.CallUnary(ctx, authed(ts, &UpsertBudgetRequest{Month: 13, Year: 2026, Amount: 1}))
		wantCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("list budgets", func(t *testing.T) {
		resp, err := ts.ledger.ListBudgets.CallUnary(ctx, authed(ts, &ListBudgetsRequest{}))
		if err != nil {
			t.Fatalf("ListBudgets failed: %v", err)
		}
		if len(resp.Msg.Budgets) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(resp.Msg.Budgets))
		}
		if resp.Msg.Budgets[0].Month != 4 {
			t.Errorf("expected latest period first, got month %d", resp.Msg.Budgets[0].Month)
		}
	})

	t.Run("month totals", func(t *testing.T) {
		resp, err := ts.ledger.GetMonthTotals.CallUnary(ctx, authed(ts, &PeriodRequest{Month: 3, Year: 2026}))
		if err != nil {
			t.Fatalf("GetMonthTotals failed: %v", err)
		}
		if resp.Msg.Income != 1000 || resp.Msg.Expense != 500.25 || resp.Msg.Net != 499.75 {
			t.Errorf("unexpected totals %+v", resp.Msg)
		}
	})

	t.Run("performance over budget", func(t *testing.T) {
		resp, err := ts.ledger.GetPerformance.CallUnary(ctx, authed(ts, &PeriodRequest{Month: 3, Year: 2026}))
		if err != nil {
			t.Fatalf("GetPerformance failed: %v", err)
		}
		if resp.Msg.Status != "over budget" || resp.Msg.Difference != -100.25 {
			t.Errorf("unexpected performance %+v", resp.Msg)
		}
	})

	t.Run("dashboard uses current month", func(t *testing.T) {
		resp, err := ts.ledger.GetDashboard.CallUnary(ctx, authed(ts, &DashboardRequest{}))
		if err != nil {
			t.Fatalf("GetDashboard failed: %v", err)
		}
		s := resp.Msg
		if s.Month != 3 || s.Year != 2026 {
			t.Fatalf("expected March 2026, got %d/%d", s.Month, s.Year)
		}
		if s.Budget == nil || *s.Budget != 400 {
			t.Errorf("expected budget 400, got %v", s.Budget)
		}
		if s.Net != 499.75 {
			t.Errorf("expected net 499.75, got %v", s.Net)
		}
	})

	t.Run("year overview", func(t *testing.T) {
		resp, err := ts.ledger.GetYearOverview.CallUnary(ctx, authed(ts, &YearOverviewRequest{Year: 2026}))
		if err != nil {
			t.Fatalf("GetYearOverview failed: %v", err)
		}
		if len(resp.Msg.Months) != 12 {
			t.Fatalf("expected 12 months, got %d", len(resp.Msg.Months))
		}
		if resp.Msg.Expense != 575.25 || resp.Msg.Income != 1000 {
			t.Errorf("unexpected year totals %+v", resp.Msg)
		}
		if resp.Msg.Months[3].Expense != 75 {
			t.Errorf("expected April expense 75, got %v", resp.Msg.Months[3].Expense)
		}
	})
}
