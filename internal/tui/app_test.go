package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/export"
	"github.com/theirongolddev/runway/internal/ledger"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return NewApp(Options{
		Config:    config.DefaultConfig(),
		StorePath: filepath.Join(t.TempDir(), "runway.db"),
		Logger:    zerolog.Nop(),
		Now: func() time.Time {
			return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
		},
	})
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press feeds keys in order and returns the final model and last command.
func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		m, cmd = a.Update(keyMsg(k))
		a = m.(App)
	}
	return a, cmd
}

func TestTabShortcuts(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		key  string
		want int
	}{
		{"f", tabFunding},
		{"r", tabRunway},
		{"s", tabScenarios},
		{"e", tabExport},
		{"x", tabSettings},
		{"b", tabBudget},
	}
	for _, tt := range tests {
		a, _ = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Errorf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}

	a, _ = press(t, a, "left")
	if a.activeTab != tabSettings {
		t.Errorf("left from Budget = %d, want wrap to Settings", a.activeTab)
	}
	a, _ = press(t, a, "right")
	if a.activeTab != tabBudget {
		t.Errorf("right from Settings = %d, want wrap to Budget", a.activeTab)
	}
}

func TestHelpOverlayEatsNextKey(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "?")
	if !a.showHelp {
		t.Fatal("? should open help")
	}
	a, _ = press(t, a, "f")
	if a.showHelp || a.activeTab != tabBudget {
		t.Errorf("showHelp=%v activeTab=%d, want help closed and tab unchanged", a.showHelp, a.activeTab)
	}
}

func TestScenarioNudgeAndReset(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "s", "l", "l")
	if got := a.scenario.Revenue.Current; got != 27000 {
		t.Fatalf("revenue after two nudges = %.0f, want 27000", got)
	}

	// Growth slider is clamped at 50%.
	a, _ = press(t, a, "j", "L", "L", "L", "L", "L", "L")
	if got := a.scenario.Revenue.Growth; got != 50 {
		t.Errorf("growth = %.0f, want clamp at 50", got)
	}

	a, _ = press(t, a, "D")
	if a.scenario != model.DefaultScenario() {
		t.Errorf("scenario after reset = %+v", a.scenario)
	}
	if a.notice.text != "Reset to default values" {
		t.Errorf("notice = %q", a.notice.text)
	}
}

func TestScenarioTypedValueIsNotClamped(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "s", "j", "enter")
	if !a.scen.editing {
		t.Fatal("enter should open the value input")
	}
	a.scen.input.SetValue("80")
	a, _ = press(t, a, "enter")

	if a.scen.editing {
		t.Error("input still open after enter")
	}
	if got := a.scenario.Revenue.Growth; got != 80 {
		t.Errorf("growth = %.0f, want 80", got)
	}
}

func TestScenarioInputEscKeepsValue(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "s", "enter")
	a.scen.input.SetValue("1")
	a, _ = press(t, a, "esc")
	if a.scenario.Revenue.Current != 25000 {
		t.Errorf("esc applied the typed value: %.0f", a.scenario.Revenue.Current)
	}
}

func TestSaveScenarioWritesStore(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "s", "l")
	a, cmd := press(t, a, "S")
	if cmd == nil {
		t.Fatal("S returned no command")
	}

	msg, ok := cmd().(scenarioSavedMsg)
	if !ok {
		t.Fatalf("command produced %T, want scenarioSavedMsg", msg)
	}
	if msg.err != nil {
		t.Fatalf("save: %v", msg.err)
	}

	m, _ := a.Update(msg)
	if got := m.(App).notice.text; got != "Scenario saved successfully" {
		t.Errorf("notice = %q", got)
	}

	s, err := store.Open(a.storePath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = s.Close() }()
	raw, err := s.Get(store.ScenarioKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(raw, `"current":26000`) {
		t.Errorf("stored scenario = %s", raw)
	}
}

func TestBudgetRemoveSelected(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "j", "d")

	if a.budget.Len() != 2 {
		t.Fatalf("Len = %d, want 2", a.budget.Len())
	}
	for _, it := range a.budget.Items() {
		if it.ID == "2" {
			t.Error("item 2 should have been removed")
		}
	}
	if a.notice.text != "Budget item removed" {
		t.Errorf("notice = %q", a.notice.text)
	}
}

func TestBudgetFormDraft(t *testing.T) {
	d := budgetDraft(&budgetFormValues{
		category:    "Marketing",
		subcategory: " Events ",
		amount:      "$2,500",
		frequency:   "quarterly",
	})
	if !d.Amount.Equal(model.ParseAmount("2500")) || d.Frequency != model.FrequencyQuarterly {
		t.Errorf("draft = %+v", d)
	}

	junk := budgetDraft(&budgetFormValues{category: "Marketing", subcategory: "Events", amount: "lots"})
	if _, err := ledger.NewBudgetLedger().Add(junk); !errors.Is(err, ledger.ErrMissingFields) {
		t.Errorf("junk amount err = %v, want ErrMissingFields", err)
	}
}

func TestAmountValidation(t *testing.T) {
	for _, in := range []string{"", "lots", "0", "$2,500"} {
		if err := validateAmount(in); err != nil {
			t.Errorf("validateAmount(%q) = %v, want nil", in, err)
		}
	}
	if err := validateAmount("-5"); err == nil {
		t.Error("validateAmount(-5) accepted a negative amount")
	}

	neg := budgetDraft(&budgetFormValues{category: "Marketing", subcategory: "Events", amount: "-5"})
	_, err := ledger.NewBudgetLedger().Add(neg)
	if got := addErrorNotice(err); got != "Amount cannot be negative" {
		t.Errorf("notice = %q", got)
	}
}

func TestRoundFormDraftOptionalTokens(t *testing.T) {
	d := roundDraft(&roundFormValues{
		name: "IDO", amount: "1,000,000", roundType: "ido", dilution: "10",
		tokenPrice: "0.12", tokensIssued: "8,000,000",
	})
	if d.Type != model.RoundIDO || d.Dilution != 10 {
		t.Errorf("draft = %+v", d)
	}
	if d.TokenPrice == nil || d.TokenPrice.String() != "0.12" {
		t.Errorf("TokenPrice = %v", d.TokenPrice)
	}
	if d.TokensIssued == nil || *d.TokensIssued != 8000000 {
		t.Errorf("TokensIssued = %v", d.TokensIssued)
	}

	bare := roundDraft(&roundFormValues{name: "Seed", amount: "500000", dilution: "15"})
	if bare.TokenPrice != nil || bare.TokensIssued != nil {
		t.Error("blank token fields should stay nil")
	}
	if bare.Type != model.RoundSeed {
		t.Errorf("Type = %q, want seed", bare.Type)
	}
}

func TestExportRequiresSection(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "e")
	for range export.Sections {
		a, _ = press(t, a, " ", "j")
	}
	if a.exp.sections.Count() != 0 {
		t.Fatalf("Count = %d after toggling every section off", a.exp.sections.Count())
	}

	a, _ = press(t, a, "enter")
	if a.exp.running {
		t.Error("export started with nothing selected")
	}
	if !strings.HasPrefix(a.notice.text, "Please select at least one section") {
		t.Errorf("notice = %q", a.notice.text)
	}
}

func TestExportLifecycle(t *testing.T) {
	a := newTestApp(t)
	a, cmd := press(t, a, "e", "3", "enter")
	if !a.exp.running || cmd == nil {
		t.Fatalf("running=%v cmd=%v, want a started export", a.exp.running, cmd != nil)
	}
	if a.notice.text != "Preparing PPTX export..." {
		t.Errorf("notice = %q", a.notice.text)
	}

	// A second enter while running is ignored.
	a, cmd = press(t, a, "enter")
	if cmd != nil {
		t.Error("second export started while one was running")
	}

	m, _ := a.Update(exportDoneMsg{
		format: export.PPTX,
		record: export.Record{Name: "financial-report-2024-03-09.pptx"},
	})
	a = m.(App)
	if a.exp.running {
		t.Error("still running after done")
	}
	if want := "PPTX report exported successfully as financial-report-2024-03-09.pptx"; a.notice.text != want {
		t.Errorf("notice = %q, want %q", a.notice.text, want)
	}

	m, _ = a.Update(exportDoneMsg{format: export.PDF, err: errors.New("disk full")})
	if got := m.(App).notice.text; got != "Failed to export report. Please try again." {
		t.Errorf("failure notice = %q", got)
	}
}

func TestNoticeExpiry(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "s", "D")
	first := a.seq
	a, _ = press(t, a, "D")

	// The first notice's timer fires after it was replaced.
	m, _ := a.Update(noticeExpiredMsg{seq: first})
	a = m.(App)
	if a.notice.text == "" {
		t.Fatal("stale expiry cleared the newer notice")
	}

	m, _ = a.Update(noticeExpiredMsg{seq: a.seq})
	if got := m.(App).notice.text; got != "" {
		t.Errorf("notice = %q, want cleared", got)
	}
}

func TestSettingsEditCash(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "x", "j", "enter")
	if !a.settings.editing {
		t.Fatal("enter should open the settings input")
	}
	a.settings.input.SetValue("800,000")
	a, _ = press(t, a, "enter")

	if a.treasury.Fiat != 800000 || a.cfg.Treasury.Fiat != 800000 {
		t.Errorf("fiat = %.0f / %.0f, want 800000", a.treasury.Fiat, a.cfg.Treasury.Fiat)
	}
	if a.notice.text != "Settings saved" {
		t.Errorf("notice = %q", a.notice.text)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Treasury.Fiat != 800000 {
		t.Errorf("saved fiat = %.0f, want 800000", cfg.Treasury.Fiat)
	}
}

func TestSettingsEditDelayUpdatesExporter(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "x", "j", "j", "j", "enter")
	a.settings.input.SetValue("500")
	a, _ = press(t, a, "enter")

	if got := a.exporter.Delay(); got != 500*time.Millisecond {
		t.Errorf("exporter delay = %v, want 500ms", got)
	}
	if a.cfg.Export.DelayMS != 500 {
		t.Errorf("DelayMS = %d, want 500", a.cfg.Export.DelayMS)
	}
}

func TestSettingsRejectsUnknownTheme(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(t, a, "x", "enter")
	a.settings.input.SetValue("neon")
	a, _ = press(t, a, "enter")

	if a.cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("theme = %q, want unchanged", a.cfg.Appearance.Theme)
	}
	if a.notice.text != `unknown theme "neon"` {
		t.Errorf("notice = %q", a.notice.text)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	a = m.(App)

	wants := []string{"Budget Items", "Funding Rounds", "Projected Balance", "Assumptions", "Recent Exports", "Config file"}
	for i, want := range wants {
		a.activeTab = i
		view := a.View()
		if !strings.Contains(view, want) {
			t.Errorf("tab %d view missing %q", i, want)
		}
		if h := strings.Count(view, "\n") + 1; h != 45 {
			t.Errorf("tab %d view height = %d, want 45", i, h)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if view := m.(App).View(); !strings.Contains(view, "Terminal too narrow") {
		t.Errorf("view = %q", view)
	}
}
