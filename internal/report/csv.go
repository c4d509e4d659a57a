package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/theirongolddev/gastos/internal/model"
)

var csvHeader = []string{"id", "date", "name", "category", "amount", "description"}

// WriteCSV writes one row per expense followed by a blank line and the
// budget totals.
func WriteCSV(w io.Writer, expenses []model.Expense, totals model.Totals) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{e.ID, e.Date, e.Name, e.CategoryName, e.Amount.StringFixed(2), e.Description}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %s: %w", e.ID, err)
		}
	}

	summary := [][]string{
		{},
		{"budget", totals.Total.StringFixed(2)},
		{"spent", totals.Spent.StringFixed(2)},
		{"remaining", totals.Remaining.StringFixed(2)},
		{"percentage", fmt.Sprintf("%d", totals.Percentage)},
	}
	if err := cw.WriteAll(summary); err != nil {
		return fmt.Errorf("writing csv totals: %w", err)
	}
	return cw.Error()
}
