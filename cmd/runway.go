package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/forecast"

	"github.com/spf13/cobra"
)

var runwayCmd = &cobra.Command{
	Use:   "runway",
	Short: "Project cash runway month by month",
	Long: "Simulate the balance over the next 24 months from the default scenario.\n" +
		"Scenario flags override individual assumptions.",
	RunE: runRunway,
}

var flagCash float64

func init() {
	runwayCmd.Flags().Float64Var(&flagCash, "cash", 0, "Starting balance (default: treasury cash from config)")
	addScenarioFlags(runwayCmd)
	rootCmd.AddCommand(runwayCmd)
}

func runRunway(c *cobra.Command, _ []string) error {
	cfg := loadConfig()
	log := newLogger(cfg, true)

	sc, err := scenarioFromFlags(c)
	if err != nil {
		return err
	}

	cash := cfg.Treasury.Fiat
	if c.Flags().Changed("cash") {
		cash = flagCash
	}

	points := forecast.Project(cash, sc)
	sum := forecast.Summarize(points)
	health := forecast.HealthFor(sum.RunwayMonths)
	log.Debug().Float64("cash", cash).Int("runway", sum.RunwayMonths).Msg("projection")

	runway := cli.FormatMonths(float64(sum.RunwayMonths))
	if sum.PastHorizon {
		runway = fmt.Sprintf("%d+ months", forecast.HorizonMonths)
	}
	breakEven := "not within 24 months"
	if m, ok := sum.CashFlowPositive(); ok {
		breakEven = fmt.Sprintf("month %d", m)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CASH RUNWAY  Next 24 months"))
	fmt.Println()

	fmt.Print(cli.RenderKV([][2]string{
		{"Starting cash", cli.FormatMoney(cash)},
		{"Monthly burn", cli.FormatMoney(sum.MonthlyBurn)},
		{"Revenue (month 0)", cli.FormatMoney(sc.Revenue.Current) + "  +" + cli.FormatPercent(sc.Revenue.Growth) + "/mo"},
		{"Net cash flow", cli.FormatDelta(sc.NetCashFlow()) + "/mo"},
		{"Runway", runway + "  " + cli.RenderHealth(health.String())},
		{"Cash-flow positive", breakEven},
		{"Buffered runway", cli.FormatMonths(sc.BufferedRunway()) + " on " + cli.FormatCompactMoney(sc.Funding.Amount)},
	}))
	fmt.Println()

	balances := forecast.Series(points, func(p forecast.MonthPoint) float64 { return p.Balance })
	fmt.Printf("  Balance  %s\n\n", cli.RenderSparkline(balances))

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			fmt.Sprintf("M%d", p.Month),
			cli.FormatMoney(p.Balance),
			cli.FormatMoney(p.Revenue),
			cli.FormatMoney(p.Burn),
			cli.FormatDelta(p.NetCashFlow),
			cli.FormatMoney(p.Conservative),
			cli.FormatMoney(p.Optimistic),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Balance", "Revenue", "Burn", "Net", "Conservative", "Optimistic"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
