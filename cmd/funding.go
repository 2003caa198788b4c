package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/ledger"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var fundingCmd = &cobra.Command{
	Use:   "funding",
	Short: "Treasury, funding rounds, dilution and implied valuation",
	RunE:  runFundingList,
}

var fundingAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a funding round to the session ledger",
	Args:  cobra.NoArgs,
	RunE:  runFundingAdd,
}

var (
	flagRoundName     string
	flagRoundAmount   string
	flagRoundType     string
	flagRoundDilution float64
	flagTokenPrice    string
	flagTokensIssued  int64
)

func init() {
	fundingAddCmd.Flags().StringVar(&flagRoundName, "name", "", "Round name")
	fundingAddCmd.Flags().StringVar(&flagRoundAmount, "amount", "", "Amount raised in USD")
	fundingAddCmd.Flags().StringVar(&flagRoundType, "type", "seed", "pre-seed, seed, series-a, series-b, ido or token-sale")
	fundingAddCmd.Flags().Float64Var(&flagRoundDilution, "dilution", 0, "Percent of ownership sold")
	fundingAddCmd.Flags().StringVar(&flagTokenPrice, "token-price", "", "Token price (optional)")
	fundingAddCmd.Flags().Int64Var(&flagTokensIssued, "tokens", 0, "Tokens issued (optional)")

	fundingCmd.AddCommand(fundingAddCmd)
	rootCmd.AddCommand(fundingCmd)
}

func runFundingList(_ *cobra.Command, _ []string) error {
	printFunding(ledger.NewFundingLedger(model.SampleFunding()...))
	return nil
}

func runFundingAdd(c *cobra.Command, _ []string) error {
	log := newLogger(loadConfig(), true)

	rt, err := model.ParseRoundType(flagRoundType)
	if err != nil {
		return err
	}

	draft := ledger.RoundDraft{
		Name:     flagRoundName,
		Amount:   model.ParseAmount(flagRoundAmount),
		Type:     rt,
		Dilution: flagRoundDilution,
	}
	if strings.TrimSpace(flagTokenPrice) != "" {
		p := model.ParseAmount(flagTokenPrice)
		draft.TokenPrice = &p
	}
	if c.Flags().Changed("tokens") {
		n := flagTokensIssued
		draft.TokensIssued = &n
	}

	l := ledger.NewFundingLedger(model.SampleFunding()...)
	round, err := l.Add(draft)
	if errors.Is(err, ledger.ErrMissingFields) {
		return errors.New("please fill in all required fields (--name, --amount, --dilution)")
	}
	if err != nil {
		return err
	}
	log.Info().Str("id", round.ID).Str("type", string(round.Type)).Msg("funding round added")

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Funding round added successfully (%s)\n", round.ID)
	}
	printFunding(l)
	return nil
}

func printFunding(l *ledger.FundingLedger) {
	cfg := loadConfig()

	fmt.Println()
	fmt.Println(cli.RenderTitle("FUNDING & TREASURY"))
	fmt.Println()

	tr := cfg.Treasury
	valuation := "-"
	if v, ok := l.ImpliedValuation(); ok {
		valuation = cli.FormatMoney(v.InexactFloat64())
	}
	dilution := l.TotalDilution()

	fmt.Print(cli.RenderKV([][2]string{
		{"Cash", cli.FormatMoney(tr.Fiat)},
		{"Tokens", cli.FormatCompact(tr.Tokens) + " (" + cli.FormatCompactMoney(tr.TokenValue) + ")"},
		{"Total treasury", cli.FormatMoney(tr.Fiat + tr.TokenValue)},
		{"Total raised", cli.FormatAmount(l.TotalRaised())},
		{"Total dilution", cli.RenderProgressBar(dilution, 20)},
		{"Implied valuation", valuation},
	}))
	fmt.Println()

	rounds := l.Rounds()
	rows := make([][]string, 0, len(rounds))
	for _, r := range rounds {
		price, tokens := "-", "-"
		if r.TokenPrice != nil {
			price = "$" + r.TokenPrice.String()
		}
		if r.TokensIssued != nil {
			tokens = cli.FormatNumber(*r.TokensIssued)
		}
		rows = append(rows, []string{
			r.Name,
			r.Type.Label(),
			cli.FormatAmount(r.Amount),
			cli.FormatDate(r.Date),
			cli.FormatPercent(r.Dilution),
			price,
			tokens,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Round", "Type", "Amount", "Date", "Dilution", "Token Price", "Tokens"},
		Rows:    rows,
	}))
	fmt.Println()
}

