package components

import (
	"fmt"

	"github.com/theirongolddev/gastos/internal/model"
	"github.com/theirongolddev/gastos/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// spentRatio clamps spent/total into [0,1] for bar fill.
func spentRatio(t model.Totals) float64 {
	if !t.Total.IsPositive() {
		return 0
	}
	f, _ := t.Spent.Div(t.Total).Float64()
	return min(max(f, 0), 1)
}

// BudgetBar renders spent against the budget with the percentage after it.
// The fill switches to the warning and overspent colors as it grows.
func BudgetBar(totals model.Totals, width int) string {
	t := theme.Active
	color := t.SpentColor(totals.Percentage)

	pctStr := fmt.Sprintf("%4d%%", totals.Percentage)
	barW := max(width-len(pctStr)-1, 4)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Remaining)

	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")
	pct := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).Render(pctStr)
	return bar.ViewAs(spentRatio(totals)) + space + pct
}

// CompactBudgetBar is a status-bar sized indicator with a label.
func CompactBudgetBar(label string, totals model.Totals, width int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")
	return labelStyle.Render(label) + space + BudgetBar(totals, max(width-lipgloss.Width(label)-1, 10))
}
