package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/forecast"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// warnMonths of burn left is where the balance chart turns orange.
const warnMonths = 6

func (a App) renderRunwayTab(cw int) string {
	t := theme.Active
	points, sum := a.projection()
	health := forecast.HealthFor(sum.RunwayMonths)

	runway := cli.FormatMonths(float64(sum.RunwayMonths))
	if sum.PastHorizon {
		runway = fmt.Sprintf("%d+ months", forecast.HorizonMonths)
	}

	breakEven := "Not within 24 months"
	breakTone := t.Orange
	if m, ok := sum.CashFlowPositive(); ok {
		breakEven = fmt.Sprintf("Month %d", m)
		breakTone = t.GreenBright
	}

	net := a.scenario.NetCashFlow()
	netTone := t.Red
	if net >= 0 {
		netTone = t.GreenBright
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Runway", Value: runway, Delta: health.String(), Tone: t.HealthColor(health.String())},
		{Label: "Monthly Burn", Value: cli.FormatMoney(sum.MonthlyBurn), Delta: "flat expenses"},
		{Label: "Net Cash Flow", Value: cli.FormatDelta(net), Delta: "month 0", Tone: netTone},
		{Label: "Cash-Flow Positive", Value: breakEven, Tone: breakTone},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)

	balances := forecast.Series(points, func(p forecast.MonthPoint) float64 { return p.Balance })
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = fmt.Sprintf("M%d", p.Month)
	}
	chartH := 10
	if a.height > 0 {
		chartH = min(max(a.height-22, 6), 14)
	}
	chart := components.BarChart(balances, labels, t.Accent, warnMonths*sum.MonthlyBurn, innerW, chartH)
	b.WriteString(components.ContentCard("Projected Balance", chart, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Scenarios & Cash Flow", a.renderBands(points), cw))
	return b.String()
}

// renderBands draws the balance envelope and revenue against burn, each
// pair on a shared scale so rows compare directly.
func (a App) renderBands(points []forecast.MonthPoint) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	cons := forecast.Series(points, func(p forecast.MonthPoint) float64 { return p.Conservative })
	base := forecast.Series(points, func(p forecast.MonthPoint) float64 { return p.Balance })
	opt := forecast.Series(points, func(p forecast.MonthPoint) float64 { return p.Optimistic })
	rev := forecast.Series(points, func(p forecast.MonthPoint) float64 { return p.Revenue })
	burn := forecast.Series(points, func(p forecast.MonthPoint) float64 { return p.Burn })

	bandHi := 0.0
	for _, v := range opt {
		bandHi = math.Max(bandHi, v)
	}
	flowHi := 0.0
	for i := range rev {
		flowHi = math.Max(flowHi, math.Max(rev[i], burn[i]))
	}

	rows := []struct {
		label  string
		series []float64
		hi     float64
		color  lipgloss.Color
	}{
		{"Conservative", cons, bandHi, t.Orange},
		{"Base", base, bandHi, t.Accent},
		{"Optimistic", opt, bandHi, t.GreenBright},
		{"Revenue", rev, flowHi, t.Green},
		{"Burn", burn, flowHi, t.Red},
	}

	var b strings.Builder
	for i, r := range rows {
		if i == 3 {
			b.WriteString("\n")
		}
		last := r.series[len(r.series)-1]
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", r.label)))
		b.WriteString(components.SparklineRange(r.series, 0, r.hi, r.color))
		b.WriteString(space.Render("  "))
		b.WriteString(valueStyle.Render(cli.FormatCompactMoney(last)))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
