// Package tui provides the interactive Bubble Tea dashboard for runway.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/export"
	"github.com/theirongolddev/runway/internal/forecast"
	"github.com/theirongolddev/runway/internal/ledger"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Tab indexes, in the order of components.Tabs.
const (
	tabBudget = iota
	tabFunding
	tabRunway
	tabScenarios
	tabExport
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// Options configures a new App.
type Options struct {
	Config    config.Config
	StorePath string // scenario store; store.DefaultPath() when empty
	Logger    zerolog.Logger
	NeedSetup bool // show the first-run form before the dashboard
	Now       func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	cfg       config.Config
	log       zerolog.Logger
	storePath string

	// Session state, seeded from sample data
	scenario model.ScenarioConfig
	budget   *ledger.BudgetLedger
	funding  *ledger.FundingLedger
	treasury model.TreasuryBalance
	metrics  model.FinancialMetrics
	exporter *export.Exporter

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	budgetState budgetState
	scen        scenarioState
	exp         exportState
	settings    settingsState

	// Add-item / add-round form (huh), at most one open at a time
	form       *huh.Form
	formKind   formKind
	budgetVals *budgetFormValues
	roundVals  *roundFormValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
	notice  notice
	seq     int // notice generation, for expiry
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	treasury := model.SampleTreasury(now())
	treasury.Fiat = opts.Config.Treasury.Fiat
	treasury.Tokens = opts.Config.Treasury.Tokens
	treasury.TokenValue = opts.Config.Treasury.TokenValue

	format, err := export.ParseFormat(opts.Config.Export.DefaultFormat)
	if err != nil {
		format = export.PDF
	}

	return App{
		cfg:       opts.Config,
		log:       opts.Logger,
		storePath: opts.StorePath,
		scenario:  model.DefaultScenario(),
		budget:    ledger.NewBudgetLedger(model.SampleBudget()...),
		funding:   ledger.NewFundingLedger(model.SampleFunding()...),
		treasury:  treasury,
		metrics:   model.SampleMetrics(),
		exporter:  export.New(time.Duration(opts.Config.Export.DelayMS) * time.Millisecond),
		exp: exportState{
			format:   format,
			sections: export.AllSections(),
		},
		needSetup: opts.NeedSetup,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// projection recomputes the runway series from the current scenario.
func (a App) projection() ([]forecast.MonthPoint, forecast.Summary) {
	points := forecast.Project(a.treasury.Fiat, a.scenario)
	return points, forecast.Summarize(points)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.needSetup && a.setupForm == nil {
			return a.startSetup()
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case noticeExpiredMsg:
		if msg.seq == a.seq {
			a.notice = notice{}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.exp.running {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case exportDoneMsg:
		return a.finishExport(msg)

	case scenarioSavedMsg:
		if msg.err != nil {
			a.log.Error().Err(msg.err).Str("path", a.storePath).Msg("scenario save failed")
			notify := a.setNotice("Could not save scenario: "+msg.err.Error(), components.NoticeError)
			return a, notify
		}
		a.log.Info().Str("path", a.storePath).Msg("scenario saved")
		notify := a.setNotice("Scenario saved successfully", components.NoticeSuccess)
		return a, notify
	}

	// Forward unhandled messages to an open form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.scen.editing || a.settings.editing {
		return a.updateTextInputs(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		if a.exp.cancel != nil {
			a.exp.cancel()
		}
		return a, tea.Quit
	}

	// Open forms and inputs intercept all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		if key == "esc" {
			a.closeForm()
			return a, nil
		}
		return a.updateForm(msg)
	}
	if a.scen.editing {
		return a.updateScenarioInput(msg)
	}
	if a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	var (
		handled bool
		cmd     tea.Cmd
		next    App
	)
	switch a.activeTab {
	case tabBudget:
		next, cmd, handled = a.updateBudgetKeys(key)
	case tabFunding:
		next, cmd, handled = a.updateFundingKeys(key)
	case tabScenarios:
		next, cmd, handled = a.updateScenarioKeys(key)
	case tabExport:
		next, cmd, handled = a.updateExportKeys(key)
	case tabSettings:
		next, cmd, handled = a.updateSettingsKeys(key)
	}
	if handled {
		return next, cmd
	}

	if key == "q" {
		if a.exp.cancel != nil {
			a.exp.cancel()
		}
		return a, tea.Quit
	}

	switch key {
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		// Tab bar occupies the first two lines
		if msg.Y <= 1 {
			if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// moveCursor moves the list cursor of the active tab by delta, clamped.
func (a *App) moveCursor(delta int) {
	clamp := func(v, n int) int {
		return min(max(v, 0), max(n-1, 0))
	}
	switch a.activeTab {
	case tabBudget:
		a.budgetState.cursor = clamp(a.budgetState.cursor+delta, a.budget.Len())
	case tabScenarios:
		a.scen.cursor = clamp(a.scen.cursor+delta, len(model.ScenarioFields))
	case tabExport:
		a.exp.cursor = clamp(a.exp.cursor+delta, len(export.Sections))
	case tabSettings:
		a.settings.cursor = clamp(a.settings.cursor+delta, settingsFieldCount)
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  runway needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"b f r s e x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
		}},
		{"Budget & Funding", []struct{ key, desc string }{
			{"a", "Add item / round"},
			{"d", "Remove selected budget item"},
		}},
		{"Scenarios", []struct{ key, desc string }{
			{"h l", "Adjust by one step"},
			{"Enter", "Type an exact value"},
			{"S", "Save scenario"},
			{"D", "Reset to defaults"},
		}},
		{"Export", []struct{ key, desc string }{
			{"1 2 3", "PDF / CSV / PPTX"},
			{"Space", "Toggle section"},
			{"Enter", "Export report"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Cancel form or edit"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-11s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.notice.text, a.notice.kind)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.form != nil:
		content = a.form.View()
	default:
		switch a.activeTab {
		case tabBudget:
			content = a.renderBudgetTab(cw)
		case tabFunding:
			content = a.renderFundingTab(cw)
		case tabRunway:
			content = a.renderRunwayTab(cw)
		case tabScenarios:
			content = a.renderScenariosTab(cw)
		case tabExport:
			content = a.renderExportTab(cw)
		case tabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.form != nil:
		return "[tab] next field  [enter] confirm  [esc] cancel"
	case a.scen.editing, a.settings.editing:
		return "[enter] apply  [esc] cancel"
	}
	switch a.activeTab {
	case tabBudget:
		return "[a]dd  [d]elete  [j/k] select  [?]help  [q]uit"
	case tabFunding:
		return "[a]dd round  [?]help  [q]uit"
	case tabScenarios:
		return "[h/l] adjust  [enter] type  [S]ave  [D]efaults  [?]help"
	case tabExport:
		return "[1-3] format  [space] toggle  [enter] export  [?]help"
	case tabSettings:
		return "[j/k] navigate  [enter] edit  [?]help  [q]uit"
	}
	return "[?]help  [q]uit"
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards don't show the terminal's own background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

// ─── Background commands ────────────────────────────────────────

type exportDoneMsg struct {
	format export.Format
	record export.Record
	err    error
}

func runExportCmd(ctx context.Context, e *export.Exporter, req export.Request) tea.Cmd {
	return func() tea.Msg {
		rec, err := e.Export(ctx, req)
		return exportDoneMsg{format: req.Format, record: rec, err: err}
	}
}

type scenarioSavedMsg struct {
	err error
}
