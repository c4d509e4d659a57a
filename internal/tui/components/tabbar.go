package components

import (
	"strings"

	"github.com/theirongolddev/gastos/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs. Keys are digits so letters stay free for
// per-tab actions.
var Tabs = []Tab{
	{Name: "Overview", Key: '1'},
	{Name: "Expenses", Key: '2'},
	{Name: "Categories", Key: '3'},
	{Name: "Profile", Key: '4'},
}

func tabLabel(tab Tab, active bool) string {
	t := theme.Active
	if active {
		return lipgloss.NewStyle().
			Foreground(t.Accent).
			Background(t.Highlight).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}
	key := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(string(tab.Key))
	name := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" " + tab.Name + " ")
	return key + name
}

// TabVisualWidth is the rendered width of a tab label, used for mouse hits.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(tabLabel(tab, active))
}

// RenderTabBar renders the tab bar with the given active index. The title
// sits on the right.
func RenderTabBar(activeIdx int, width int, title string) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = tabLabel(tab, i == activeIdx)
	}
	left := strings.Join(parts, sep)

	right := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Render(title + " ")
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	return left +
		lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", gap)) +
		right
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
