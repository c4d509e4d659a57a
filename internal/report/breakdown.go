// Package report turns the expense list into exports: CSV for spreadsheets
// and a one-page PDF statement.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/model"
)

// Uncategorized labels expenses whose category could not be resolved.
const Uncategorized = "Uncategorized"

// CategoryTotal is one row of the per-category breakdown.
type CategoryTotal struct {
	Name    string
	Count   int
	Amount  decimal.Decimal
	Percent int // share of total spending
}

// ByCategory groups expenses by resolved category name, largest first.
func ByCategory(expenses []model.Expense) []CategoryTotal {
	idx := map[string]int{}
	var out []CategoryTotal
	total := decimal.Zero

	for _, e := range expenses {
		name := e.CategoryName
		if name == "" {
			name = Uncategorized
		}
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, CategoryTotal{Name: name})
		}
		out[i].Count++
		out[i].Amount = out[i].Amount.Add(e.Amount)
		total = total.Add(e.Amount)
	}

	if total.IsPositive() {
		for i := range out {
			out[i].Percent = int(out[i].Amount.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DailySpend sums spending for each of the days days ending at end,
// oldest first. Expenses with unparseable dates are skipped.
func DailySpend(expenses []model.Expense, end time.Time, days int) []decimal.Decimal {
	out := make([]decimal.Decimal, days)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	for _, e := range expenses {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		ago := int(endDay.Sub(d).Hours() / 24)
		if ago < 0 || ago >= days {
			continue
		}
		i := days - 1 - ago
		out[i] = out[i].Add(e.Amount)
	}
	return out
}

// SortByDate orders expenses newest first, then by name.
func SortByDate(expenses []model.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		if expenses[i].Date != expenses[j].Date {
			return expenses[i].Date > expenses[j].Date
		}
		return expenses[i].Name < expenses[j].Name
	})
}
