package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/model"
	"github.com/theirongolddev/gastos/internal/report"
	"github.com/theirongolddev/gastos/internal/tracker"
	"github.com/theirongolddev/gastos/internal/tui/components"
	"github.com/theirongolddev/gastos/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// sortedExpenses is the display order of the Expenses tab, newest first.
func (a App) sortedExpenses() []model.Expense {
	list := a.tr.Expenses()
	report.SortByDate(list)
	return list
}

func (a App) updateExpensesKeys(key string) (tea.Model, tea.Cmd) {
	v := a.vals
	switch key {
	case "a":
		v.Expense = model.ExpenseDraft{}
		return a.openForm(formExpenseAdd)
	case "e", "enter":
		e, ok := a.selectedExpense()
		if !ok {
			return a, nil
		}
		v.EditID = e.ID
		v.Expense = model.DraftFrom(e)
		return a.openForm(formExpenseEdit)
	case "d", "delete":
		e, ok := a.selectedExpense()
		if !ok {
			return a, nil
		}
		v.EditID = e.ID
		v.Prompt = fmt.Sprintf("Delete %q (%s)?", e.Name, cli.FormatMoney(e.Amount))
		return a.openForm(formExpenseDelete)
	default:
		a.expCursor = moveCursor(a.expCursor, len(a.tr.Expenses()), key)
	}
	return a, nil
}

// categoryCell renders a badge padded to w columns, or a dim dash when the
// expense has no resolvable category.
func categoryCell(name string, w int) string {
	t := theme.Active
	bg := lipgloss.NewStyle().Background(t.Surface)
	if name == "" {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(fmt.Sprintf("%-*s", w, "—"))
	}
	badge := components.Badge(cli.Truncate(name, w-2), tracker.CategoryColor(name))
	return badge + bg.Render(strings.Repeat(" ", max(w-lipgloss.Width(badge), 0)))
}

func (a App) renderExpensesTab(cw, h int) string {
	t := theme.Active
	list := a.sortedExpenses()
	innerW := components.CardInnerWidth(cw)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(list) == 0 {
		return components.FocusCard("Expenses", muted.Render("No expenses yet. Press a to add one."), cw)
	}

	const dateW, catW, amountW = 10, 16, 14
	nameW := max(innerW-dateW-catW-amountW-3, 10)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Spent).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Highlight).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	// Card chrome, header, rule and the detail card take roughly 10 lines.
	visible := max(h-10, 3)
	offset := 0
	if a.expCursor >= visible {
		offset = a.expCursor - visible + 1
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %*s", dateW, "Date", nameW, "Name", catW, "Category", amountW, "Amount")))
	body.WriteString("\n")
	body.WriteString(muted.Render(strings.Repeat("─", innerW)))

	for i := offset; i < len(list) && i < offset+visible; i++ {
		e := list[i]
		date := fmt.Sprintf("%-*s", dateW, cli.FormatDate(e.Date, a.cfg.General.DateFormat))
		name := fmt.Sprintf("%-*s", nameW, cli.Truncate(e.Name, nameW))
		amount := fmt.Sprintf("%*s", amountW, cli.FormatMoney(e.Amount))

		body.WriteString("\n")
		if i == a.expCursor {
			body.WriteString(selStyle.Render(date + " " + name + " "))
			body.WriteString(categoryCell(e.CategoryName, catW))
			body.WriteString(selStyle.Render(" " + amount))
			continue
		}
		body.WriteString(dateStyle.Render(date) + space + rowStyle.Render(name) + space)
		body.WriteString(categoryCell(e.CategoryName, catW))
		body.WriteString(space + amountStyle.Render(amount))
	}

	totals := a.tr.Totals()
	title := fmt.Sprintf("Expenses (%d) · %s spent · %s left",
		len(list), cli.FormatMoney(totals.Spent), cli.FormatMoney(totals.Remaining))

	var b strings.Builder
	b.WriteString(components.FocusCard(title, body.String(), cw))

	if e, ok := a.selectedExpense(); ok {
		detail := rowStyle.Render(e.Name) + muted.Render("  "+cli.FormatDate(e.Date, a.cfg.General.DateFormat))
		if e.Description != "" {
			detail += "\n" + muted.Render(cli.Truncate(e.Description, innerW))
		}
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Selected", detail, cw))
	}
	return b.String()
}
