package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateFundingKeys(key string) (App, tea.Cmd, bool) {
	if key != "a" {
		return a, nil, false
	}
	m, cmd := a.openRoundForm()
	return m.(App), cmd, true
}

func (a App) renderFundingTab(cw int) string {
	t := theme.Active
	tr := a.treasury

	raised := a.funding.TotalRaised().InexactFloat64()
	dilution := a.funding.TotalDilution()

	valuation := "-"
	if v, ok := a.funding.ImpliedValuation(); ok {
		valuation = cli.FormatCompactMoney(v.InexactFloat64())
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Cash", Value: cli.FormatMoney(tr.Fiat), Delta: "updated " + cli.FormatDate(tr.LastUpdated)},
		{Label: "Token Holdings", Value: cli.FormatCompact(tr.Tokens), Delta: cli.FormatCompactMoney(tr.TokenValue) + " value"},
		{Label: "Total Treasury", Value: cli.FormatMoney(tr.Fiat + tr.TokenValue), Tone: t.AccentBright},
		{Label: "Total Raised", Value: cli.FormatMoney(raised), Delta: fmt.Sprintf("%d rounds", len(a.funding.Rounds())), Tone: t.GreenBright},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	var equity strings.Builder
	equity.WriteString(components.GaugeBar("Dilution", dilution/100,
		cli.FormatPercent(dilution)+" of equity sold", 10, max(innerW-40, 10)))
	equity.WriteString("\n")
	equity.WriteString(labelStyle.Render("Implied valuation  "))
	equity.WriteString(valueStyle.Render(valuation))
	b.WriteString(components.ContentCard("Equity", equity.String(), cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Funding Rounds", a.renderRounds(cw), cw))
	return b.String()
}

func (a App) renderRounds(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	rounds := a.funding.Rounds()
	if len(rounds) == 0 {
		return dim.Render("No funding rounds. Press [a] to add one.")
	}

	badgeW := 12
	nameW := max(innerW-badgeW-12-14-10-14-5, 10)

	header := fmt.Sprintf("%-*s %-*s %12s %14s %10s %14s", badgeW, "Type", nameW, "Round", "Amount", "Date", "Dilution", "Token Price")
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Render(header))
	b.WriteString("\n")
	b.WriteString(dim.Render(strings.Repeat("─", min(innerW, lipgloss.Width(header)))))

	badge := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	for _, r := range rounds {
		price := "-"
		if r.TokenPrice != nil {
			price = "$" + r.TokenPrice.String()
		}
		b.WriteString("\n")
		b.WriteString(badge.Render(fmt.Sprintf("%-*s", badgeW, truncStr(r.Type.Label(), badgeW))))
		b.WriteString(text.Render(fmt.Sprintf(" %-*s %12s %14s %10s %14s",
			nameW, truncStr(r.Name, nameW),
			cli.FormatAmount(r.Amount),
			cli.FormatDate(r.Date),
			cli.FormatPercent(r.Dilution),
			price)))
	}
	return b.String()
}
