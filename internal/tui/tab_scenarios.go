package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/forecast"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type scenarioState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

func (a App) updateScenarioKeys(key string) (App, tea.Cmd, bool) {
	field := model.ScenarioFields[a.scen.cursor]

	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "l", "+", "=":
		a.scenario = field.Nudge(a.scenario, 1)
	case "h", "-":
		a.scenario = field.Nudge(a.scenario, -1)
	case "L":
		a.scenario = field.Nudge(a.scenario, 10)
	case "H":
		a.scenario = field.Nudge(a.scenario, -10)
	case "enter":
		ti := textinput.New()
		ti.CharLimit = 20
		ti.Width = 16
		ti.Placeholder = fmt.Sprintf("%.0f", field.Get(a.scenario))
		ti.SetValue(fmt.Sprintf("%g", field.Get(a.scenario)))
		ti.Focus()
		a.scen.input = ti
		a.scen.editing = true
		return a, ti.Cursor.BlinkCmd(), true
	case "S":
		return a, a.saveScenarioCmd(), true
	case "D":
		a.scenario = a.scenario.ResetToDefaults()
		a.log.Info().Msg("scenario reset to defaults")
		notify := a.setNotice("Reset to default values", components.NoticeInfo)
		return a, notify, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateScenarioInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		field := model.ScenarioFields[a.scen.cursor]
		// Typed values are not clamped to the slider range.
		a.scenario = field.Set(a.scenario, model.ParseNumber(a.scen.input.Value()))
		a.scen.editing = false
		return a, nil
	case "esc":
		a.scen.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.scen.input, cmd = a.scen.input.Update(msg)
	return a, cmd
}

// updateTextInputs forwards non-key messages (cursor blink) to whichever
// inline input is open.
func (a App) updateTextInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.scen.editing:
		a.scen.input, cmd = a.scen.input.Update(msg)
	case a.settings.editing:
		a.settings.input, cmd = a.settings.input.Update(msg)
	}
	return a, cmd
}

func (a App) saveScenarioCmd() tea.Cmd {
	path := a.storePath
	if path == "" {
		path = store.DefaultPath()
	}
	cfg := a.scenario
	return func() tea.Msg {
		return scenarioSavedMsg{err: store.SaveScenarioAt(path, cfg)}
	}
}

func (a App) renderScenariosTab(cw int) string {
	t := theme.Active
	c := a.scenario
	_, sum := a.projection()

	net := c.NetCashFlow()
	netTone := t.Red
	if net >= 0 {
		netTone = t.GreenBright
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total Expenses", Value: cli.FormatMoney(c.TotalExpenses()), Delta: "per month"},
		{Label: "Net Cash Flow", Value: cli.FormatDelta(net), Delta: "per month", Tone: netTone},
		{Label: "Buffered Runway", Value: cli.FormatMonths(c.BufferedRunway()), Delta: "on planned raise"},
		{Label: "Projected Runway", Value: cli.FormatMonths(float64(sum.RunwayMonths)),
			Tone: t.HealthColor(forecast.HealthFor(sum.RunwayMonths).String())},
	}, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Assumptions", a.renderSliders(cw), cw))
	return b.String()
}

func (a App) renderSliders(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	groupStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	focusLabel := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	labelW := 20
	valueW := 12
	rangeW := 22
	sliderW := max(innerW-labelW-valueW-rangeW-6, 10)

	var b strings.Builder
	group := ""
	for i, f := range model.ScenarioFields {
		if f.Group != group {
			if group != "" {
				b.WriteString("\n")
			}
			group = f.Group
			b.WriteString(groupStyle.Render(group))
			b.WriteString("\n")
		}

		focused := i == a.scen.cursor
		marker, ls := "  ", labelStyle
		if focused {
			marker, ls = "▸ ", focusLabel
		}
		b.WriteString(ls.Render(fmt.Sprintf("%s%-*s", marker, labelW, f.Label)))

		v := f.Get(a.scenario)
		if focused && a.scen.editing {
			b.WriteString(a.scen.input.View())
		} else {
			b.WriteString(components.Slider(v, f.Min, f.Max, sliderW, focused))
			b.WriteString(space.Render(" "))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, formatField(f, v))))
			b.WriteString(dim.Render(fmt.Sprintf("  %s – %s", formatField(f, f.Min), formatField(f, f.Max))))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatField(f model.ScenarioField, v float64) string {
	switch {
	case f.Money:
		return cli.FormatMoney(v)
	case strings.HasSuffix(f.Key, "growth"):
		return cli.FormatPercent(v)
	default:
		return cli.FormatMonths(v)
	}
}
