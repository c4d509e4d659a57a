// Package theme defines the color themes for the gastos TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps budget roles to colors.
type Theme struct {
	Name string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Highlight  lipgloss.Color // selected row, active tab
	Border     lipgloss.Color
	Focus      lipgloss.Color // focused card border

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color
	Accent      lipgloss.Color

	Spent     lipgloss.Color
	Remaining lipgloss.Color
	Warn      lipgloss.Color // spent past the warning threshold
	Over      lipgloss.Color // overspent, errors

	// Badges colors category chips; indexed by hue bucket.
	Badges []lipgloss.Color
}

// WarnPercent is the spent percentage at which bars switch to Warn.
const WarnPercent = 80

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default warm dark theme.
var FlexokiDark = Theme{
	Name:        "flexoki-dark",
	Background:  "#100F0F",
	Surface:     "#1C1B1A",
	Highlight:   "#282726",
	Border:      "#403E3C",
	Focus:       "#3AA99F",
	TextDim:     "#575653",
	TextMuted:   "#878580",
	TextPrimary: "#FFFCF0",
	Accent:      "#3AA99F",
	Spent:       "#DA702C",
	Remaining:   "#879A39",
	Warn:        "#D0A215",
	Over:        "#D14D41",
	Badges:      []lipgloss.Color{"#D14D41", "#DA702C", "#D0A215", "#879A39", "#3AA99F", "#4385BE", "#8B7EC8", "#CE5D97"},
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:        "catppuccin-mocha",
	Background:  "#1E1E2E",
	Surface:     "#313244",
	Highlight:   "#45475A",
	Border:      "#585B70",
	Focus:       "#89B4FA",
	TextDim:     "#6C7086",
	TextMuted:   "#A6ADC8",
	TextPrimary: "#CDD6F4",
	Accent:      "#89B4FA",
	Spent:       "#FAB387",
	Remaining:   "#A6E3A1",
	Warn:        "#F9E2AF",
	Over:        "#F38BA8",
	Badges:      []lipgloss.Color{"#F38BA8", "#FAB387", "#F9E2AF", "#A6E3A1", "#94E2D5", "#89B4FA", "#CBA6F7", "#F5C2E7"},
}

// TokyoNight is a cool blue theme.
var TokyoNight = Theme{
	Name:        "tokyo-night",
	Background:  "#1A1B26",
	Surface:     "#24283B",
	Highlight:   "#343A52",
	Border:      "#565F89",
	Focus:       "#7AA2F7",
	TextDim:     "#565F89",
	TextMuted:   "#A9B1D6",
	TextPrimary: "#C0CAF5",
	Accent:      "#7AA2F7",
	Spent:       "#FF9E64",
	Remaining:   "#9ECE6A",
	Warn:        "#E0AF68",
	Over:        "#F7768E",
	Badges:      []lipgloss.Color{"#F7768E", "#FF9E64", "#E0AF68", "#9ECE6A", "#7DCFFF", "#7AA2F7", "#BB9AF7", "#C0CAF5"},
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:        "terminal",
	Background:  "0",
	Surface:     "0",
	Highlight:   "8",
	Border:      "8",
	Focus:       "6",
	TextDim:     "8",
	TextMuted:   "7",
	TextPrimary: "15",
	Accent:      "6",
	Spent:       "3",
	Remaining:   "2",
	Warn:        "11",
	Over:        "1",
	Badges:      []lipgloss.Color{"1", "3", "11", "2", "6", "4", "5", "13"},
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names lists theme names in display order.
func Names() []string {
	out := make([]string, len(All))
	for i, t := range All {
		out[i] = t.Name
	}
	return out
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// SpentColor picks the bar color for a spent percentage.
func (t Theme) SpentColor(percentage int) lipgloss.Color {
	switch {
	case percentage > 100:
		return t.Over
	case percentage >= WarnPercent:
		return t.Warn
	default:
		return t.Spent
	}
}

// Badge returns the chip color for a hue in degrees.
func (t Theme) Badge(hue int) lipgloss.Color {
	if len(t.Badges) == 0 {
		return t.Accent
	}
	hue = ((hue % 360) + 360) % 360
	return t.Badges[hue*len(t.Badges)/360]
}
