package service

import (
	"github.com/mmynk/budgetbook/internal/models"
	"github.com/mmynk/budgetbook/internal/report"
)

// Wire messages. Dates travel as YYYY-MM-DD strings.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type TransactionInput struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
}

type Transaction struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
}

type AddTransactionRequest struct {
	Transaction TransactionInput `json:"transaction"`
}

type AddTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type UpdateTransactionRequest struct {
	ID          int64            `json:"id"`
	Transaction TransactionInput `json:"transaction"`
}

type UpdateTransactionResponse struct{}

type DeleteTransactionRequest struct {
	ID int64 `json:"id"`
}

type DeleteTransactionResponse struct{}

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type Budget struct {
	ID     int64   `json:"id"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

type UpsertBudgetRequest struct {
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

type UpsertBudgetResponse struct{}

type ListBudgetsRequest struct{}

type ListBudgetsResponse struct {
	Budgets []Budget `json:"budgets"`
}

type GetBudgetResponse struct {
	// Amount is absent when no budget is set.
	Amount *float64 `json:"amount,omitempty"`
}

type MonthTotalsResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type PerformanceResponse struct {
	Spent      float64 `json:"spent"`
	Budgeted   float64 `json:"budgeted"`
	Difference float64 `json:"difference"`
	Status     string  `json:"status"`
}

type DashboardRequest struct{}

type Summary struct {
	Month   int      `json:"month"`
	Year    int      `json:"year"`
	Income  float64  `json:"income"`
	Expense float64  `json:"expense"`
	Budget  *float64 `json:"budget,omitempty"`
	Net     float64  `json:"net"`
}

type YearOverviewRequest struct {
	Year int `json:"year"`
}

type YearOverviewResponse struct {
	Year    int       `json:"year"`
	Months  []Summary `json:"months"`
	Income  float64   `json:"income"`
	Expense float64   `json:"expense"`
	Net     float64   `json:"net"`
}

func toWireTransaction(tx models.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID,
		Date:        tx.Date.Format(models.DateLayout),
		Amount:      tx.Amount,
		Kind:        string(tx.Kind),
		Category:    tx.Category,
		Description: tx.Description,
	}
}

func toWireSummary(s models.Summary) Summary {
	return Summary{
		Month:   s.Period.Month,
		Year:    s.Period.Year,
		Income:  s.Income,
		Expense: s.Expense,
		Budget:  s.Budget,
		Net:     s.Net,
	}
}

func toWirePerformance(v report.PerformanceView) PerformanceResponse {
	return PerformanceResponse{
		Spent:      v.Spent,
		Budgeted:   v.Budgeted,
		Difference: v.Difference,
		Status:     string(v.Status),
	}
}
