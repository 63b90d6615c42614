// Package models defines the core domain models for budgetbook.
//
// # Records
//
// Three record sets are persisted:
//   - User: the login account (a single seeded account in practice)
//   - Transaction: one income or expense entry on a calendar day
//   - Budget: the spending target for one calendar month
//
// # Derived values
//
// MonthTotals, Performance and Summary are never stored. They are computed at
// query time from the records above, keyed by a Period (month, year).
//
// # Design Principles
//
// 1. **No stored linkage**: a Budget pairs with Transactions purely by Period
// 2. **Calendar days**: Transaction dates carry no time of day and are kept at UTC midnight
// 3. **Plain amounts**: amounts are currency-agnostic float64 values; formatting is a front-end concern
package models
