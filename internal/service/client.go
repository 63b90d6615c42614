package service

import (
	"strings"

	"connectrpc.com/connect"
)

// AuthClient calls the AuthService.
type AuthClient struct {
	Login *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthClient constructs a client for the AuthService served at baseURL.
func NewAuthClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &AuthClient{
		Login: connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

// LedgerClient calls the LedgerService.
type LedgerClient struct {
	AddTransaction    *connect.Client[AddTransactionRequest, AddTransactionResponse]
	UpdateTransaction *connect.Client[UpdateTransactionRequest, UpdateTransactionResponse]
	DeleteTransaction *connect.Client[DeleteTransactionRequest, DeleteTransactionResponse]
	ListTransactions  *connect.Client[PeriodRequest, ListTransactionsResponse]
	UpsertBudget      *connect.Client[UpsertBudgetRequest, UpsertBudgetResponse]
	ListBudgets       *connect.Client[ListBudgetsRequest, ListBudgetsResponse]
	GetBudget         *connect.Client[PeriodRequest, GetBudgetResponse]
	GetMonthTotals    *connect.Client[PeriodRequest, MonthTotalsResponse]
	GetPerformance    *connect.Client[PeriodRequest, PerformanceResponse]
	GetDashboard      *connect.Client[DashboardRequest, Summary]
	GetYearOverview   *connect.Client[YearOverviewRequest, YearOverviewResponse]
}

// NewLedgerClient constructs a client for the LedgerService served at baseURL.
func NewLedgerClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &LedgerClient{
		AddTransaction:    connect.NewClient[AddTransactionRequest, AddTransactionResponse](httpClient, baseURL+LedgerServiceAddTransactionProcedure, opts...),
		UpdateTransaction: connect.NewClient[UpdateTransactionRequest, UpdateTransactionResponse](httpClient, baseURL+LedgerServiceUpdateTransactionProcedure, opts...),
		DeleteTransaction: connect.NewClient[DeleteTransactionRequest, DeleteTransactionResponse](httpClient, baseURL+LedgerServiceDeleteTransactionProcedure, opts...),
		ListTransactions:  connect.NewClient[PeriodRequest, ListTransactionsResponse](httpClient, baseURL+LedgerServiceListTransactionsProcedure, opts...),
		UpsertBudget:      connect.NewClient[UpsertBudgetRequest, UpsertBudgetResponse](httpClient, baseURL+LedgerServiceUpsertBudgetProcedure, opts...),
		ListBudgets:       connect.NewClient[ListBudgetsRequest, ListBudgetsResponse](httpClient, baseURL+LedgerServiceListBudgetsProcedure, opts...),
		GetBudget:         connect.NewClient[PeriodRequest, GetBudgetResponse](httpClient, baseURL+LedgerServiceGetBudgetProcedure, opts...),
		GetMonthTotals:    connect.NewClient[PeriodRequest, MonthTotalsResponse](httpClient, baseURL+LedgerServiceGetMonthTotalsProcedure, opts...),
		GetPerformance:    connect.NewClient[PeriodRequest, PerformanceResponse](httpClient, baseURL+LedgerServiceGetPerformanceProcedure, opts...),
		GetDashboard:      connect.NewClient[DashboardRequest, Summary](httpClient, baseURL+LedgerServiceGetDashboardProcedure, opts...),
		GetYearOverview:   connect.NewClient[YearOverviewRequest, YearOverviewResponse](httpClient, baseURL+LedgerServiceGetYearOverviewProcedure, opts...),
	}
}
