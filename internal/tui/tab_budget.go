package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/forecast"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type budgetState struct {
	cursor int
}

func (a App) updateBudgetKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "a":
		m, cmd := a.openBudgetForm()
		return m.(App), cmd, true
	case "d", "delete":
		items := a.budget.Items()
		if len(items) == 0 {
			return a, nil, true
		}
		item := items[min(a.budgetState.cursor, len(items)-1)]
		if !a.budget.Remove(item.ID) {
			return a, nil, true
		}
		a.budgetState.cursor = min(a.budgetState.cursor, max(a.budget.Len()-1, 0))
		a.log.Info().Str("id", item.ID).Msg("budget item removed")
		notify := a.setNotice("Budget item removed", components.NoticeSuccess)
		return a, notify, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	m := a.metrics

	monthly := a.budget.TotalMonthlyBudget().InexactFloat64()

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Monthly Budget", Value: cli.FormatMoney(monthly), Delta: fmt.Sprintf("%d active categories", a.budget.ActiveCategoryCount())},
		{Label: "Burn Rate", Value: cli.FormatMoney(m.BurnRate), Delta: "per month"},
		{Label: "Runway", Value: cli.FormatMonths(m.Runway), Tone: t.HealthColor(forecast.HealthFor(int(m.Runway)).String())},
		{Label: "Growth", Value: cli.FormatPercent(m.GrowthRate), Delta: fmt.Sprintf("efficiency %.1fx", m.Efficiency), Tone: t.GreenBright},
	}, cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("By Category", a.renderCategoryBars(cw), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Budget Items", a.renderBudgetItems(cw), cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Budget Items", a.renderBudgetItems(widths[0]), widths[0]),
		components.ContentCard("By Category", a.renderCategoryBars(widths[1]), widths[1]),
	}))
	return b.String()
}

func (a App) renderCategoryBars(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	totals := a.budget.ByCategory()
	if len(totals) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No budget items")
	}

	maxVal := totals[0].Amount.InexactFloat64()
	labelW := 12
	amountW := 10
	barW := max(innerW-labelW-amountW-2, 5)

	space := lipgloss.NewStyle().Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	track := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for i, ct := range totals {
		color := t.CategoryColor(string(ct.Category))
		label := lipgloss.NewStyle().Foreground(color).Background(t.Surface).
			Render(fmt.Sprintf("%-*s", labelW, truncStr(string(ct.Category), labelW)))

		v := ct.Amount.InexactFloat64()
		filled := 0
		if maxVal > 0 {
			filled = int(v / maxVal * float64(barW))
		}
		filled = min(max(filled, 1), barW)

		b.WriteString(label)
		b.WriteString(space.Render(" "))
		b.WriteString(lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", filled)))
		b.WriteString(track.Render(strings.Repeat("░", barW-filled)))
		b.WriteString(space.Render(" "))
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatCompactMoney(v))))
		if i < len(totals)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderBudgetItems(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	items := a.budget.Items()
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if len(items) == 0 {
		return dim.Render("No budget items. Press [a] to add one.")
	}

	amountW := 12
	freqW := 10
	catW := 12
	subW := max(innerW-amountW-freqW-catW-5, 8)

	header := fmt.Sprintf("  %-*s %-*s %*s %-*s", catW, "Category", subW, "Item", amountW, "Amount", freqW, "Frequency")
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(dim.Render(strings.Repeat("─", min(innerW, lipgloss.Width(header)))))

	for i, it := range items {
		selected := i == a.budgetState.cursor
		bg := t.Surface
		if selected {
			bg = t.SurfaceBright
		}
		marker := lipgloss.NewStyle().Foreground(t.AccentBright).Background(bg).Render("  ")
		if selected {
			marker = lipgloss.NewStyle().Foreground(t.AccentBright).Background(bg).Render("▸ ")
		}
		cat := lipgloss.NewStyle().Foreground(t.CategoryColor(string(it.Category))).Background(bg).
			Render(fmt.Sprintf("%-*s", catW, truncStr(string(it.Category), catW)))
		rest := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(bg).
			Render(fmt.Sprintf(" %-*s %*s %-*s",
				subW, truncStr(it.Subcategory, subW),
				amountW, cli.FormatAmount(it.Amount),
				freqW, string(it.Frequency)))

		row := marker + cat + rest
		if pad := innerW - lipgloss.Width(row); pad > 0 {
			row += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", pad))
		}
		b.WriteString("\n")
		b.WriteString(row)
	}
	return b.String()
}
