package cli

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/theirongolddev/gastos/internal/model"
)

type donutCell uint8

const (
	cellEmpty donutCell = iota
	cellSpent
	cellRemaining
)

// donutCells lays out a ring of the given radius. Terminal cells are about
// twice as tall as wide, so each row spans 2*diameter columns. The spent
// segment starts at twelve o'clock and runs clockwise for frac of the ring.
func donutCells(frac float64, radius int) [][]donutCell {
	h := radius*2 + 1
	w := h * 2
	cy := float64(h-1) / 2
	cx := float64(w-1) / 2
	outer, inner := float64(radius)+0.5, float64(radius)-1.0

	grid := make([][]donutCell, h)
	for y := range grid {
		grid[y] = make([]donutCell, w)
		for x := range grid[y] {
			dx, dy := (float64(x)-cx)/2, float64(y)-cy
			d := math.Hypot(dx, dy)
			if d > outer || d < inner {
				continue
			}
			angle := math.Atan2(dx, -dy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			if angle/(2*math.Pi) < frac {
				grid[y][x] = cellSpent
			} else {
				grid[y][x] = cellRemaining
			}
		}
	}
	return grid
}

// RenderDonut draws spent against remaining as a ring with the percentage
// centred inside.
func RenderDonut(t model.Totals, radius int) string {
	radius = max(radius, 3)
	grid := donutCells(spentFraction(t), radius)

	label := FormatPercent(t.Percentage)
	labelRow := len(grid) / 2
	labelCol := (len(grid[labelRow]) - utf8.RuneCountInString(label)) / 2

	spent := spentStyle
	if t.Overspent() {
		spent = overStyle
	}

	var b strings.Builder
	for y, row := range grid {
		for x := 0; x < len(row); x++ {
			if y == labelRow && x == labelCol {
				b.WriteString(valueStyle.Bold(true).Render(label))
				x += utf8.RuneCountInString(label) - 1
				continue
			}
			switch row[x] {
			case cellSpent:
				b.WriteString(spent.Render("█"))
			case cellRemaining:
				b.WriteString(remainingStyle.Render("█"))
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
