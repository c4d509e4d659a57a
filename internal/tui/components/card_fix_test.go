package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gastos/internal/model"
	"github.com/theirongolddev/gastos/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	require.Less(t, shortLines, tallLines, "short card should be shorter than tall card")

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	require.Len(t, lines, tallLines)

	for i := shortLines; i < len(lines); i++ {
		assert.Contains(t, lines[i], "\x1b[", "padding line %d has no styling", i)
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	joined := CardRow([]string{
		ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20),
		ContentCard("Short", "A", 30),
	})
	lines := strings.Split(joined, "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		assert.Equal(t, want, lipgloss.Width(line), "line %d width", i)
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	w := LayoutRow(83, 4)
	assert.Equal(t, []int{21, 21, 21, 20}, w)
	assert.Nil(t, LayoutRow(10, 0))
}

func TestTabIdxByKey(t *testing.T) {
	assert.Equal(t, 0, TabIdxByKey('1'))
	assert.Equal(t, 3, TabIdxByKey('4'))
	assert.Equal(t, -1, TabIdxByKey('x'))
}

func TestBudgetBarColorsAndLabel(t *testing.T) {
	theme.SetActive("flexoki-dark")

	totals := model.Totals{
		Total:      decimal.NewFromInt(500),
		Spent:      decimal.NewFromInt(600),
		Percentage: 120,
	}
	out := BudgetBar(totals, 40)
	assert.Contains(t, out, "120%")
	assert.Equal(t, 40, lipgloss.Width(out))
	assert.Equal(t, 1.0, spentRatio(totals), "overspent bar is clamped full")

	assert.Equal(t, 0.0, spentRatio(model.Totals{}))
}

func TestStatusBarPrefersSpinner(t *testing.T) {
	theme.SetActive("flexoki-dark")
	banner := Banner{Kind: BannerError, Text: "invalid amount"}

	out := RenderStatusBar(60, "[q]uit", banner, "")
	assert.Contains(t, out, "invalid amount")
	assert.Equal(t, 60, lipgloss.Width(out))

	out = RenderStatusBar(60, "[q]uit", banner, "saving")
	assert.NotContains(t, out, "invalid amount")
	assert.Contains(t, out, "saving")
}

func TestHorizontalBarsScaleToPeak(t *testing.T) {
	theme.SetActive("terminal")
	defer theme.SetActive("flexoki-dark")

	out := HorizontalBars([]HBar{
		{Label: "Food", Value: 200, Text: "$200.00"},
		{Label: "Transport", Value: 50, Text: "$50.00"},
	}, 40)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Greater(t, strings.Count(lines[0], "█"), strings.Count(lines[1], "█"))
	assert.Contains(t, lines[1], "$50.00")
}
