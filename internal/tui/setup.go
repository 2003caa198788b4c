package tui

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/export"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues backs the first-run form.
type SetupValues struct {
	Theme  string
	Cash   string
	Format string
}

// SetupForm builds the first-run form over vals. It is shared by the
// dashboard and the `runway setup` command.
func SetupForm(vals *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themes = append(themes, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to runway!").
				Description("A few questions before the dashboard opens.\nRun `runway setup` anytime to reconfigure."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&vals.Theme),
			huh.NewInput().
				Title("Cash on hand (USD)").
				Description("Starting balance for the runway projection.").
				Value(&vals.Cash),
			huh.NewSelect[string]().
				Title("Default export format").
				Options(
					huh.NewOption("PDF", "pdf"),
					huh.NewOption("CSV", "csv"),
					huh.NewOption("PPTX", "pptx"),
				).
				Value(&vals.Format),
		),
	).WithShowHelp(false)
}

// NewSetupValues seeds the form from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Theme:  cfg.Appearance.Theme,
		Cash:   fmt.Sprintf("%.0f", cfg.Treasury.Fiat),
		Format: cfg.Export.DefaultFormat,
	}
}

// ApplySetup copies the answers into cfg. A blank or unparsable cash
// answer keeps the current balance.
func ApplySetup(cfg config.Config, vals *SetupValues) config.Config {
	if theme.Known(vals.Theme) {
		cfg.Appearance.Theme = vals.Theme
	}
	if cash := model.ParseNumber(vals.Cash); cash > 0 {
		cfg.Treasury.Fiat = cash
	}
	if vals.Format != "" {
		cfg.Export.DefaultFormat = vals.Format
	}
	return cfg
}

func (a App) startSetup() (tea.Model, tea.Cmd) {
	a.setupVals = NewSetupValues(a.cfg)
	a.setupForm = SetupForm(a.setupVals).WithWidth(a.width).WithHeight(a.height)
	return a, a.setupForm.Init()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	fm, cmd := a.setupForm.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		notify := a.setNotice("Setup skipped; using defaults", components.NoticeInfo)
		return a, notify

	case huh.StateCompleted:
		a.cfg = ApplySetup(a.cfg, a.setupVals)
		a.setupForm = nil
		a.needSetup = false

		theme.SetActive(a.cfg.Appearance.Theme)
		a.treasury.Fiat = a.cfg.Treasury.Fiat
		if f, err := export.ParseFormat(a.cfg.Export.DefaultFormat); err == nil {
			a.exp.format = f
		}

		if err := config.Save(a.cfg); err != nil {
			a.log.Error().Err(err).Msg("saving config after setup")
			notify := a.setNotice("Could not save config: "+err.Error(), components.NoticeError)
			return a, notify
		}
		a.log.Info().Str("path", config.Path()).Msg("setup complete")
		notify := a.setNotice("Saved to "+config.Path(), components.NoticeSuccess)
		return a, notify
	}

	return a, cmd
}
