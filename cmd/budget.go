package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/ledger"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget items, monthly total and category breakdown",
	RunE:  runBudgetList,
}

var budgetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a budget item to the session ledger",
	Args:  cobra.NoArgs,
	RunE:  runBudgetAdd,
}

var budgetRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a budget item from the session ledger",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRemove,
}

var (
	flagCategory    string
	flagSubcategory string
	flagAmount      string
	flagFrequency   string
)

func init() {
	budgetAddCmd.Flags().StringVar(&flagCategory, "category", "", "Category (Salaries, Marketing, Operations, Development or custom)")
	budgetAddCmd.Flags().StringVar(&flagSubcategory, "subcategory", "", "Line item name")
	budgetAddCmd.Flags().StringVar(&flagAmount, "amount", "", "Amount in USD")
	budgetAddCmd.Flags().StringVar(&flagFrequency, "frequency", "monthly", "monthly, quarterly, annual or one-time")

	budgetCmd.AddCommand(budgetAddCmd, budgetRemoveCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetList(_ *cobra.Command, _ []string) error {
	printBudget(ledger.NewBudgetLedger(model.SampleBudget()...))
	return nil
}

func runBudgetAdd(_ *cobra.Command, _ []string) error {
	log := newLogger(loadConfig(), true)

	freq, err := model.ParseFrequency(flagFrequency)
	if err != nil {
		return err
	}

	l := ledger.NewBudgetLedger(model.SampleBudget()...)
	item, err := l.Add(ledger.BudgetDraft{
		Category:    model.Category(flagCategory),
		Subcategory: flagSubcategory,
		Amount:      model.ParseAmount(flagAmount),
		Frequency:   freq,
	})
	if errors.Is(err, ledger.ErrMissingFields) {
		return errors.New("please fill in all required fields (--category, --subcategory, --amount)")
	}
	if err != nil {
		return err
	}
	log.Info().Str("id", item.ID).Str("category", string(item.Category)).Msg("budget item added")

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Budget item added successfully (%s)\n", item.ID)
	}
	printBudget(l)
	return nil
}

func runBudgetRemove(_ *cobra.Command, args []string) error {
	l := ledger.NewBudgetLedger(model.SampleBudget()...)
	if !l.Remove(args[0]) {
		return fmt.Errorf("no budget item with id %q", args[0])
	}
	if !flagQuiet {
		fmt.Fprintln(os.Stderr, "  Budget item removed")
	}
	printBudget(l)
	return nil
}

func printBudget(l *ledger.BudgetLedger) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET"))
	fmt.Println()

	rows := make([][]string, 0, l.Len()+2)
	for _, it := range l.Items() {
		rows = append(rows, []string{
			it.ID,
			string(it.Category),
			it.Subcategory,
			cli.FormatAmount(it.Amount),
			string(it.Frequency),
			cli.FormatDate(it.StartDate),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "Monthly total", cli.FormatAmount(l.TotalMonthlyBudget()), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Category", "Item", "Amount", "Frequency", "Since"},
		Rows:    rows,
	}))
	fmt.Println()

	totals := l.ByCategory()
	fmt.Printf("  %d active categories\n\n", l.ActiveCategoryCount())
	if len(totals) == 0 {
		return
	}
	maxVal := totals[0].Amount.InexactFloat64()
	for _, ct := range totals {
		label := fmt.Sprintf("%-12s %10s", ct.Category, cli.FormatCompactMoney(ct.Amount.InexactFloat64()))
		fmt.Println(cli.RenderHorizontalBar(label, ct.Amount.InexactFloat64(), maxVal, 30))
	}
	fmt.Println()
}
