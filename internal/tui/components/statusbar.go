package components

import (
	"strings"

	"github.com/theirongolddev/gastos/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// BannerKind selects the banner color.
type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerInfo
	BannerSuccess
	BannerError
)

// Banner is the one-line message shown in the status bar after an action.
type Banner struct {
	Kind BannerKind
	Text string
}

// RenderStatusBar renders the bottom status bar: key hints on the left and
// either the busy spinner or the current banner on the right.
func RenderStatusBar(width int, hints string, banner Banner, busy string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	left := hintStyle.Render(" " + hints)

	right := ""
	switch {
	case busy != "":
		right = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(busy + " ")
	case banner.Kind != BannerNone && banner.Text != "":
		color := t.TextPrimary
		switch banner.Kind {
		case BannerSuccess:
			color = t.Remaining
		case BannerError:
			color = t.Over
		}
		right = lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).Render(banner.Text + " ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	fill := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", padding))
	return left + fill + right
}
