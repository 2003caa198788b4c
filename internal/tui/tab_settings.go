package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/export"
	"github.com/theirongolddev/runway/internal/logging"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCash
	settingsFieldFormat
	settingsFieldDelay
	settingsFieldLogLevel
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "enter":
		return a.settingsStartEdit()
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (App, tea.Cmd, bool) {
	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldCash:
		ti.Placeholder = "595000"
		ti.SetValue(fmt.Sprintf("%.0f", a.treasury.Fiat))
	case settingsFieldFormat:
		ti.Placeholder = "pdf, csv or pptx"
		ti.SetValue(string(a.exp.format))
	case settingsFieldDelay:
		ti.Placeholder = "2000 (milliseconds)"
		ti.SetValue(strconv.Itoa(a.cfg.Export.DelayMS))
	case settingsFieldLogLevel:
		ti.Placeholder = "debug, info, warn, error or off"
		ti.SetValue(a.cfg.Logging.Level)
	}

	ti.Focus()
	a.settings.input = ti
	a.settings.editing = true
	return a, ti.Cursor.BlinkCmd(), true
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		if err := a.settingsApply(strings.TrimSpace(a.settings.input.Value())); err != nil {
			notify := a.setNotice(err.Error(), components.NoticeError)
			return a, notify
		}
		if err := config.Save(a.cfg); err != nil {
			a.log.Error().Err(err).Msg("saving settings")
			notify := a.setNotice("Save failed: "+err.Error(), components.NoticeError)
			return a, notify
		}
		notify := a.setNotice("Settings saved", components.NoticeSuccess)
		return a, notify
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsApply validates val for the selected field and applies it to
// the config and the live session.
func (a *App) settingsApply(val string) error {
	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Known(val) {
			return fmt.Errorf("unknown theme %q", val)
		}
		a.cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldCash:
		cash := model.ParseNumber(val)
		if cash <= 0 {
			return errors.New("cash must be a positive amount")
		}
		a.cfg.Treasury.Fiat = cash
		a.treasury.Fiat = cash
	case settingsFieldFormat:
		f, err := export.ParseFormat(val)
		if err != nil {
			return err
		}
		a.cfg.Export.DefaultFormat = string(f)
		a.exp.format = f
	case settingsFieldDelay:
		ms, err := strconv.Atoi(val)
		if err != nil || ms <= 0 {
			return errors.New("delay must be a positive number of milliseconds")
		}
		a.cfg.Export.DelayMS = ms
		a.exporter.SetDelay(time.Duration(ms) * time.Millisecond)
	case settingsFieldLogLevel:
		level := logging.ParseLevel(val)
		a.cfg.Logging.Level = level.String()
		a.log = a.log.Level(level)
	}
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"Theme", a.cfg.Appearance.Theme},
		{"Cash on Hand", cli.FormatMoney(a.treasury.Fiat)},
		{"Export Format", strings.ToUpper(string(a.exp.format))},
		{"Export Delay", fmt.Sprintf("%dms", a.cfg.Export.DelayMS)},
		{"Log Level", a.cfg.Logging.Level},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	storePath := a.storePath
	if storePath == "" {
		storePath = "(default cache)"
	}

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Scenario store:  ") + valueStyle.Render(storePath) + "\n")
	infoBody.WriteString(labelStyle.Render("Budget items:    ") + valueStyle.Render(cli.FormatNumber(int64(a.budget.Len()))) + "\n")
	infoBody.WriteString(labelStyle.Render("Funding rounds:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.funding.Rounds())))))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
