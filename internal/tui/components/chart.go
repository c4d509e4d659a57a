package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/gastos/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func peak(values []float64) float64 {
	p := 0.0
	for _, v := range values {
		p = max(p, v)
	}
	if p == 0 {
		return 1
	}
	return p
}

// Sparkline renders a one-line unicode sparkline.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	top := peak(values)

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / top * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BarChart renders vertical bars with a y-axis ceiling label and optional
// first/last x labels. Narrow areas fall back to a sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active
	top := peak(values)
	yLabel := formatChartLabel(top)
	yW := max(len(yLabel), 3)

	n := len(values)
	chartW := width - yW - 1
	barW := max(min((chartW-(n-1))/n, 4), 1)
	if barW*n+(n-1) > chartW {
		// Too many bars for the width: keep the most recent ones.
		keep := max((chartW+1)/2, 1)
		values = values[n-keep:]
		if len(labels) == n {
			labels = labels[n-keep:]
		}
		n = keep
		barW = 1
	}

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	bg := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		hi := top * float64(row) / float64(height)
		lo := top * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = yLabel
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", yW, label)))
		for i, v := range values {
			if i > 0 {
				b.WriteString(bg.Render(" "))
			}
			switch {
			case v >= hi:
				b.WriteString(bar.Render(strings.Repeat("█", barW)))
			case v > lo:
				idx := int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
				idx = min(max(idx, 0), len(sparkBlocks)-1)
				b.WriteString(bar.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(bg.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + n - 1
	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", yW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n && n > 1 {
		first, last := labels[0], labels[n-1]
		gap := axisLen - len(first) - len(last)
		if gap > 0 {
			b.WriteString("\n")
			b.WriteString(axis.Render(strings.Repeat(" ", yW+1) + first + strings.Repeat(" ", gap) + last))
		}
	}
	return b.String()
}

// HBar is one row in HorizontalBars.
type HBar struct {
	Label string
	Value float64
	Text  string // right-hand annotation, e.g. formatted amount
	Hue   int
}

// HorizontalBars renders labelled bars scaled to the largest value, each
// tinted with its badge color.
func HorizontalBars(rows []HBar, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	vals := make([]float64, len(rows))
	for i, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		textW = max(textW, lipgloss.Width(r.Text))
		vals[i] = r.Value
	}
	labelW = min(labelW, 16)
	barW := max(width-labelW-textW-2, 4)
	top := peak(vals)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	empty := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	lines := make([]string, len(rows))
	for i, r := range rows {
		filled := int(math.Round(r.Value / top * float64(barW)))
		filled = min(max(filled, 0), barW)
		fill := lipgloss.NewStyle().Foreground(t.Badge(r.Hue)).Background(t.Surface)

		label := r.Label
		if lipgloss.Width(label) > labelW {
			label = string([]rune(label)[:labelW-1]) + "…"
		}
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s ", labelW, label)) +
			fill.Render(strings.Repeat("█", filled)) +
			empty.Render(strings.Repeat("░", barW-filled)) +
			textStyle.Render(fmt.Sprintf(" %*s", textW, r.Text))
	}
	return strings.Join(lines, "\n")
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
