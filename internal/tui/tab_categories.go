package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/report"
	"github.com/theirongolddev/gastos/internal/tui/components"
	"github.com/theirongolddev/gastos/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateCategoriesKeys(key string) (tea.Model, tea.Cmd) {
	v := a.vals
	switch key {
	case "a":
		v.Category = ""
		return a.openForm(formCategoryAdd)
	case "d", "delete":
		c, ok := a.selectedCategory()
		if !ok {
			return a, nil
		}
		v.EditID = c.ID
		v.Prompt = fmt.Sprintf("Delete category %q?", c.Name)
		return a.openForm(formCategoryDelete)
	default:
		a.catCursor = moveCursor(a.catCursor, len(a.tr.Categories()), key)
	}
	return a, nil
}

func (a App) renderCategoriesTab(cw, h int) string {
	t := theme.Active
	cats := a.tr.Categories()
	innerW := components.CardInnerWidth(cw)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(cats) == 0 {
		return components.FocusCard("Categories", muted.Render("No categories yet. Press a to add one."), cw)
	}

	spent := map[string]report.CategoryTotal{}
	for _, c := range report.ByCategory(a.tr.Expenses()) {
		spent[c.Name] = c
	}

	const catW, countW, amountW = 22, 10, 14
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Highlight).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	visible := max(h-6, 3)
	offset := 0
	if a.catCursor >= visible {
		offset = a.catCursor - visible + 1
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s", catW, "Category", countW, "Expenses", amountW, "Spent")))
	body.WriteString("\n")
	body.WriteString(muted.Render(strings.Repeat("─", min(innerW, catW+countW+amountW+2))))

	for i := offset; i < len(cats) && i < offset+visible; i++ {
		c := cats[i]
		total := spent[c.Name]
		cols := fmt.Sprintf("%*d %*s", countW, total.Count, amountW, cli.FormatMoney(total.Amount))

		body.WriteString("\n")
		body.WriteString(categoryCell(c.Name, catW))
		if i == a.catCursor {
			body.WriteString(selStyle.Render(" " + cols + " ◂"))
			continue
		}
		body.WriteString(space + rowStyle.Render(cols))
	}

	return components.FocusCard(fmt.Sprintf("Categories (%d)", len(cats)), body.String(), cw)
}
