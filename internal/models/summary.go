package models

// MonthTotals are the summed transaction amounts of one period by kind.
// A kind with no transactions sums to 0.
type MonthTotals struct {
	Income  float64
	Expense float64
}

// Performance compares actual spending against the budget of a period.
type Performance struct {
	// Spent is the expense total of the period.
	Spent float64

	// Budgeted is the budget amount, or 0 when no budget is set.
	Budgeted float64
}

// Summary is the dashboard view of one period.
type Summary struct {
	Period Period

	Income  float64
	Expense float64

	// Budget is nil when no budget is set for the period.
	Budget *float64

	// Net is Income - Expense.
	Net float64
}
