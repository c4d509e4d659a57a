package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/tui/components"
	"github.com/theirongolddev/gastos/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateProfileKeys(key string) (tea.Model, tea.Cmd) {
	v := a.vals
	switch key {
	case "e":
		p := a.tr.Profile()
		v.Name, v.Email, v.Phone = p.Name, p.Email, p.Phone
		if v.Email == "" {
			v.Email = a.tr.Session().Email
		}
		return a.openForm(formProfile)
	case "p":
		v.PhotoPath = ""
		return a.openForm(formPhoto)
	}
	return a, nil
}

func (a App) renderProfileTab(cw int) string {
	t := theme.Active
	p := a.tr.Profile()
	sess := a.tr.Session()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	orDash := func(s string) string {
		if s == "" {
			return dimStyle.Render("—")
		}
		return valueStyle.Render(s)
	}

	email := p.Email
	if email == "" {
		email = sess.Email
	}
	photo := p.PhotoURL
	if photo == "" {
		photo = sess.PhotoURL
	}

	rows := [][2]string{
		{"Name", orDash(p.Name)},
		{"Email", orDash(email)},
		{"Phone", orDash(p.Phone)},
		{"Photo", orDash(cli.Truncate(photo, components.CardInnerWidth(cw)-12))},
		{"Budget", valueStyle.Render(cli.FormatMoney(a.tr.Budget().Total))},
		{"User ID", dimStyle.Render(sess.UserID)},
	}

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(r[1])
	}
	if p.ID == "" && a.busy != "" {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("loading profile..."))
	}

	server := dimStyle.Render(fmt.Sprintf("Service  %s", a.cfg.API.BaseURL))
	return components.FocusCard("Profile", b.String(), cw) + "\n" +
		components.ContentCard("Connection", server, cw)
}
