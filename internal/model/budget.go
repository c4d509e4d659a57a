package model

import "github.com/shopspring/decimal"

// Budget is the user's total spending allowance.
type Budget struct {
	Total decimal.Decimal
}

// IsSet reports whether the budget has a usable (positive) total.
func (b Budget) IsSet() bool {
	return b.Total.IsPositive()
}

// Totals are derived from the budget and the current expense list.
// They are recomputed on every read and never persisted.
type Totals struct {
	Total      decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal // floored at zero
	Percentage int             // round(spent/total*100), 0 when total is 0
}

// Overspent reports whether spending exceeds the budget.
func (t Totals) Overspent() bool {
	return t.Spent.GreaterThan(t.Total)
}
