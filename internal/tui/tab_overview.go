package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/report"
	"github.com/theirongolddev/gastos/internal/tracker"
	"github.com/theirongolddev/gastos/internal/tui/components"
	"github.com/theirongolddev/gastos/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const trendDays = 14

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	totals := a.tr.Totals()
	expenses := a.tr.Expenses()
	var b strings.Builder

	// Row 1: metric cards
	remainingColor, remainingNote := t.Remaining, ""
	if totals.Overspent() {
		remainingColor = t.Over
		remainingNote = "over by " + cli.FormatMoney(totals.Spent.Sub(totals.Total))
	}
	refreshed := ""
	if !a.lastRefresh.IsZero() {
		refreshed = "synced " + a.lastRefresh.Format("15:04")
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Budget", Value: cli.FormatMoney(totals.Total)},
		{
			Label: "Spent",
			Value: cli.FormatMoney(totals.Spent),
			Note:  cli.FormatPercent(totals.Percentage) + " of budget",
			Color: t.SpentColor(totals.Percentage),
		},
		{Label: "Remaining", Value: cli.FormatMoney(totals.Remaining), Note: remainingNote, Color: remainingColor},
		{Label: "Expenses", Value: strconv.Itoa(len(expenses)), Note: refreshed},
	}, cw))
	b.WriteString("\n")

	// Row 2: donut beside the budget bar and daily trend
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	radius := 4
	if a.isCompactLayout() {
		radius = 3
	}
	spentKey := lipgloss.NewStyle().Foreground(t.SpentColor(totals.Percentage)).Background(t.Surface).Render("█")
	remKey := lipgloss.NewStyle().Foreground(t.Remaining).Background(t.Surface).Render("█")
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	legend := spentKey + muted.Render(" spent  ") + remKey + muted.Render(" remaining")
	donut := lipgloss.PlaceHorizontal(components.CardInnerWidth(halves[0]), lipgloss.Center,
		strings.TrimRight(cli.RenderDonut(totals, radius), "\n")+"\n"+legend,
		lipgloss.WithWhitespaceBackground(t.Surface))
	donutCard := components.ContentCard("Spent vs remaining", donut, halves[0])

	innerW := components.CardInnerWidth(halves[1])
	daily := report.DailySpend(expenses, time.Now(), trendDays)
	vals := make([]float64, len(daily))
	labels := make([]string, len(daily))
	start := time.Now().AddDate(0, 0, -(trendDays - 1))
	for i, d := range daily {
		vals[i], _ = d.Float64()
		labels[i] = start.AddDate(0, 0, i).Format("01-02")
	}
	trend := components.BudgetBar(totals, innerW) + "\n\n" +
		components.BarChart(vals, labels, t.Spent, innerW, 6)
	trendCard := components.ContentCard(fmt.Sprintf("Daily spend (%dd)", trendDays), trend, halves[1])

	if a.isCompactLayout() {
		b.WriteString(donutCard)
		b.WriteString("\n")
		b.WriteString(trendCard)
	} else {
		b.WriteString(components.CardRow([]string{donutCard, trendCard}))
	}
	b.WriteString("\n")

	// Row 3: where the money went
	if len(expenses) == 0 {
		b.WriteString(components.ContentCard("By category",
			muted.Render("No expenses yet. Press 2 then a to add one."), cw))
		return b.String()
	}

	breakdown := report.ByCategory(expenses)
	rows := make([]components.HBar, len(breakdown))
	for i, c := range breakdown {
		v, _ := c.Amount.Float64()
		rows[i] = components.HBar{
			Label: c.Name,
			Value: v,
			Text:  fmt.Sprintf("%s %3d%%", cli.FormatMoney(c.Amount), c.Percent),
			Hue:   tracker.CategoryColor(c.Name),
		}
	}
	b.WriteString(components.ContentCard("By category", components.HorizontalBars(rows, components.CardInnerWidth(cw)), cw))
	return b.String()
}
