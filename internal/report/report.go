// Package report derives views from ledger queries. Every function is free of
// side effects; the only inputs are store results and the caller's clock.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetbook/internal/models"
)

// Source is the subset of the store the reports read from.
type Source interface {
	GetMonthTotals(ctx context.Context, month, year int) (models.MonthTotals, error)
	GetBudgetForMonth(ctx context.Context, month, year int) (*float64, error)
}

// Status classifies spending against a budget.
type Status string

const (
	NoBudget    Status = "no budget"
	UnderBudget Status = "under budget"
	OnBudget    Status = "on budget"
	OverBudget  Status = "over budget"
)

// PerformanceView is the budget-vs-actual line of one period.
type PerformanceView struct {
	Period     models.Period
	Spent      float64
	Budgeted   float64
	Difference float64 // Positive = under budget, negative = over
	Status     Status
}

// YearView holds the monthly summaries of a calendar year.
type YearView struct {
	Year    int
	Months  []models.Summary // January first
	Income  float64
	Expense float64
	Net     float64
}

// toFloat converts the result of exact decimal arithmetic back to a float64, so
// sums of float amounts do not surface binary noise like 0.30000000000000004.
// No rounding is applied; display code decides the precision.
func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Net is income minus expense.
func Net(totals models.MonthTotals) float64 {
	return toFloat(decimal.NewFromFloat(totals.Income).Sub(decimal.NewFromFloat(totals.Expense)))
}

// BudgetDifference is budgeted minus spent: positive when under budget,
// negative when over.
func BudgetDifference(perf models.Performance) float64 {
	return toFloat(decimal.NewFromFloat(perf.Budgeted).Sub(decimal.NewFromFloat(perf.Spent)))
}

// Classify reports where spending stands against the budget.
// A zero budget is treated as not set.
func Classify(perf models.Performance) Status {
	if perf.Budgeted == 0 {
		return NoBudget
	}
	switch diff := BudgetDifference(perf); {
	case diff > 0:
		return UnderBudget
	case diff < 0:
		return OverBudget
	default:
		return OnBudget
	}
}

// BuildSummary combines the totals and budget of a period.
func BuildSummary(period models.Period, totals models.MonthTotals, budget *float64) models.Summary {
	return models.Summary{
		Period:  period,
		Income:  totals.Income,
		Expense: totals.Expense,
		Budget:  budget,
		Net:     Net(totals),
	}
}

// Summarize loads and summarizes one period.
func Summarize(ctx context.Context, src Source, period models.Period) (models.Summary, error) {
	totals, err := src.GetMonthTotals(ctx, period.Month, period.Year)
	if err != nil {
		return models.Summary{}, fmt.Errorf("failed to load totals for %s: %w", period, err)
	}
	budget, err := src.GetBudgetForMonth(ctx, period.Month, period.Year)
	if err != nil {
		return models.Summary{}, fmt.Errorf("failed to load budget for %s: %w", period, err)
	}
	return BuildSummary(period, totals, budget), nil
}

// Dashboard summarizes the calendar month containing now.
func Dashboard(ctx context.Context, src Source, now time.Time) (models.Summary, error) {
	return Summarize(ctx, src, models.PeriodOf(now))
}

// PerformanceSource reads a month's spending and budget in one query.
type PerformanceSource interface {
	GetPerformanceFor(ctx context.Context, month, year int) (models.Performance, error)
}

// Performance builds the budget-vs-actual view of a period.
func Performance(ctx context.Context, src PerformanceSource, period models.Period) (PerformanceView, error) {
	perf, err := src.GetPerformanceFor(ctx, period.Month, period.Year)
	if err != nil {
		return PerformanceView{}, fmt.Errorf("failed to load performance for %s: %w", period, err)
	}
	return NewPerformanceView(period, perf), nil
}

// NewPerformanceView classifies perf for period.
func NewPerformanceView(period models.Period, perf models.Performance) PerformanceView {
	return PerformanceView{
		Period:     period,
		Spent:      perf.Spent,
		Budgeted:   perf.Budgeted,
		Difference: BudgetDifference(perf),
		Status:     Classify(perf),
	}
}

// PerformanceFromSummary derives the performance view without another query.
func PerformanceFromSummary(s models.Summary) PerformanceView {
	perf := models.Performance{Spent: s.Expense}
	if s.Budget != nil {
		perf.Budgeted = *s.Budget
	}
	return NewPerformanceView(s.Period, perf)
}

// Year summarizes every month of a calendar year.
func Year(ctx context.Context, src Source, year int) (YearView, error) {
	view := YearView{Year: year, Months: make([]models.Summary, 0, 12)}
	income, expense := decimal.Zero, decimal.Zero

	for m := 1; m <= 12; m++ {
		s, err := Summarize(ctx, src, models.Period{Month: m, Year: year})
		if err != nil {
			return YearView{}, err
		}
		view.Months = append(view.Months, s)
		income = income.Add(decimal.NewFromFloat(s.Income))
		expense = expense.Add(decimal.NewFromFloat(s.Expense))
	}

	view.Income = toFloat(income)
	view.Expense = toFloat(expense)
	view.Net = toFloat(income.Sub(expense))
	return view, nil
}
