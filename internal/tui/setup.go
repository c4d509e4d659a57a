package tui

import (
	"strings"

	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/config"
	"github.com/theirongolddev/gastos/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// newSetupForm is the first-run wizard shown when no config file exists.
func newSetupForm(v *formValues, cfg config.Config) *huh.Form {
	v.APIURL = cfg.API.BaseURL
	v.Currency = cfg.General.Currency
	v.Theme = cfg.Appearance.Theme

	currencies := make([]huh.Option[string], 0)
	for _, code := range config.CurrencyCodes() {
		currencies = append(currencies, huh.NewOption(code, code))
	}
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to gastos").
				Description("Track spending against a budget from your terminal.\nA few settings first; rerun `gastos setup` any time."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Budget service URL").
				Description("Base URL of the REST API").
				Value(&v.APIURL).
				Validate(required),
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencies...).
				Value(&v.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
		),
	).WithShowHelp(true)
}

// saveSetupConfig writes the wizard answers and applies them to this run.
// It returns the updated config so the caller can point its client at the
// chosen URL on the next launch.
func saveSetupConfig(v *formValues, cfg config.Config) (config.Config, error) {
	if u := strings.TrimSpace(v.APIURL); u != "" {
		cfg.API.BaseURL = u
	}
	if v.Currency != "" {
		cfg.General.Currency = v.Currency
		cli.SetCurrency(v.Currency)
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
		theme.SetActive(v.Theme)
	}
	return cfg, config.Save(cfg)
}

// RunSetup runs the wizard outside the dashboard and saves the answers.
func RunSetup(cfg config.Config) (config.Config, error) {
	v := &formValues{}
	if err := newSetupForm(v, cfg).Run(); err != nil {
		return cfg, err
	}
	return saveSetupConfig(v, cfg)
}
