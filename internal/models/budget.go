package models

// Budget is the spending target for one calendar month.
// At most one Budget exists per (Month, Year); saving again replaces Amount.
type Budget struct {
	// ID is the unique, store-assigned identifier.
	ID int64

	// Month is 1-12.
	Month int

	// Year is a four-digit year.
	Year int

	// Amount is the target, always positive.
	Amount float64
}

// Period returns the month this budget applies to.
func (b Budget) Period() Period {
	return Period{Month: b.Month, Year: b.Year}
}
