package models

import (
	"fmt"
	"time"
)

// Period identifies a calendar month.
type Period struct {
	Month int
	Year  int
}

// PeriodOf returns the calendar month containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Start is the first day of the month at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is the first day of the following month, so that [Start, End)
// covers the period. December rolls over into January of the next year.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether the calendar day of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start()) && d.Before(p.End())
}

// Next returns the following month.
func (p Period) Next() Period {
	return PeriodOf(p.End())
}

// String renders the period as "October 2026".
func (p Period) String() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}
