package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/export"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type exportState struct {
	format   export.Format
	sections export.Selection
	cursor   int
	running  bool
	cancel   context.CancelFunc
}

func (a App) updateExportKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "1", "2", "3":
		if !a.exp.running {
			a.exp.format = export.Formats[int(key[0]-'1')]
		}
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case " ", "space":
		if !a.exp.running {
			a.exp.sections.Toggle(export.Sections[a.exp.cursor])
		}
	case "enter":
		return a.startExport()
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) startExport() (App, tea.Cmd, bool) {
	if a.exp.running {
		return a, nil, true
	}
	if a.exp.sections.Count() == 0 {
		notify := a.setNotice("Please select at least one section to export", components.NoticeError)
		return a, notify, true
	}

	// Selection is a map; the running export gets its own copy.
	sel := make(export.Selection, len(a.exp.sections))
	for k, v := range a.exp.sections {
		sel[k] = v
	}
	req := export.Request{Format: a.exp.format, Sections: sel}

	ctx, cancel := context.WithCancel(context.Background())
	a.exp.running = true
	a.exp.cancel = cancel
	a.log.Info().Str("format", string(req.Format)).Int("sections", sel.Count()).Msg("export started")

	label := strings.ToUpper(string(req.Format))
	notify := a.setNotice(fmt.Sprintf("Preparing %s export...", label), components.NoticeInfo)
	return a, tea.Batch(
		notify,
		a.spinner.Tick,
		runExportCmd(ctx, a.exporter, req),
	), true
}

func (a App) finishExport(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	a.exp.running = false
	if a.exp.cancel != nil {
		a.exp.cancel()
		a.exp.cancel = nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return a, nil
		}
		a.log.Error().Err(msg.err).Str("format", string(msg.format)).Msg("export failed")
		notify := a.setNotice("Failed to export report. Please try again.", components.NoticeError)
		return a, notify
	}

	a.log.Info().Str("file", msg.record.Name).Msg("export finished")
	label := strings.ToUpper(string(msg.format))
	notify := a.setNotice(fmt.Sprintf("%s report exported successfully as %s", label, msg.record.Name),
		components.NoticeSuccess)
	return a, notify
}

func (a App) renderExportTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// Format choice
	var formats strings.Builder
	for i, f := range export.Formats {
		mark, style := "( )", labelStyle
		if f == a.exp.format {
			mark, style = "(o)", accentStyle
		}
		formats.WriteString(style.Render(fmt.Sprintf("[%d] %s %-5s", i+1, mark, strings.ToUpper(string(f)))))
		formats.WriteString(dim.Render(fmt.Sprintf("  %s  ~%s", f.Description(), f.EstimatedSize())))
		if i < len(export.Formats)-1 {
			formats.WriteString("\n")
		}
	}

	// Sections
	var sections strings.Builder
	for i, s := range export.Sections {
		box := "[ ]"
		if a.exp.sections[s] {
			box = "[x]"
		}
		marker, style := "  ", textStyle
		if i == a.exp.cursor {
			marker, style = "▸ ", accentStyle
		}
		sections.WriteString(style.Render(fmt.Sprintf("%s%s %-18s", marker, box, s.Title())))
		sections.WriteString(dim.Render(s.Blurb()))
		sections.WriteString("\n")
	}
	sections.WriteString("\n")
	if a.exp.running {
		sections.WriteString(a.spinner.View())
		sections.WriteString(accentStyle.Render(" Generating report..."))
	} else {
		sections.WriteString(labelStyle.Render(fmt.Sprintf("%d of %d sections selected  ", a.exp.sections.Count(), len(export.Sections))))
		sections.WriteString(accentStyle.Render("[enter] Export " + strings.ToUpper(string(a.exp.format))))
	}

	// Recent exports
	var recent strings.Builder
	history := a.exporter.History()
	for i, r := range history {
		recent.WriteString(textStyle.Render(fmt.Sprintf("%-34s", r.Name)))
		recent.WriteString(labelStyle.Render(fmt.Sprintf(" %-14s %s", cli.FormatDate(r.Date), r.Size)))
		if i < len(history)-1 {
			recent.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Format", formats.String(), cw))
	b.WriteString("\n")
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Sections", sections.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Recent Exports", recent.String(), cw))
		return b.String()
	}
	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Sections", sections.String(), widths[0]),
		components.ContentCard("Recent Exports", recent.String(), widths[1]),
	}))
	return b.String()
}
