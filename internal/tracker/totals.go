// Package tracker holds the budget rules and the orchestrator that keeps the
// session, budget, expense list and category list consistent with the backend.
package tracker

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives spent, remaining and percentage from the budget and
// the expense list. Remaining never goes below zero.
func ComputeTotals(b model.Budget, expenses []model.Expense) model.Totals {
	spent := decimal.Zero
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}
	remaining := b.Total.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return model.Totals{
		Total:      b.Total,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: Percentage(spent, b.Total),
	}
}

// Percentage is round(spent/total*100), or 0 when total is not positive.
// It exceeds 100 only when spending is over budget.
func Percentage(spent, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	return int(spent.Div(total).Mul(hundred).Round(0).IntPart())
}

// ParseAmount parses a money amount. A comma is accepted as the decimal
// separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// ValidateBudget parses a budget amount and requires it to be positive.
func ValidateBudget(amount string) (decimal.Decimal, error) {
	d, err := ParseAmount(amount)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, apperr.Validation("budget", apperr.MsgInvalidBudget)
	}
	return d, nil
}
