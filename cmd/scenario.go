package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Show, adjust and save what-if assumptions",
	RunE:  runScenarioShow,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the scenario with any flag overrides applied",
	RunE:  runScenarioShow,
}

var scenarioSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Apply assignments such as revenue.growth=20 and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScenarioSet,
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save [key=value...]",
	Short: "Save the scenario to the store",
	RunE:  runScenarioSave,
}

var scenarioResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the saved scenario with the defaults",
	Args:  cobra.NoArgs,
	RunE:  runScenarioReset,
}

var flagScenarioSave bool

func init() {
	scenarioSetCmd.Flags().BoolVar(&flagScenarioSave, "save", false, "Also save the result to the store")
	for _, c := range []*cobra.Command{scenarioCmd, scenarioShowCmd, scenarioSaveCmd} {
		addScenarioFlags(c)
	}
	scenarioCmd.AddCommand(scenarioShowCmd, scenarioSetCmd, scenarioSaveCmd, scenarioResetCmd)
	rootCmd.AddCommand(scenarioCmd)
}

// scenarioFlagName maps a field key such as "revenue.growth" to the flag
// "revenue-growth".
func scenarioFlagName(f model.ScenarioField) string {
	return strings.ReplaceAll(f.Key, ".", "-")
}

// addScenarioFlags registers one float flag per scenario leaf.
func addScenarioFlags(c *cobra.Command) {
	def := model.DefaultScenario()
	for _, f := range model.ScenarioFields {
		c.Flags().Float64(scenarioFlagName(f), f.Get(def), f.Group+": "+f.Label)
	}
}

// scenarioFromFlags applies the flags the user actually set to the defaults.
func scenarioFromFlags(c *cobra.Command) (model.ScenarioConfig, error) {
	sc := model.DefaultScenario()
	for _, f := range model.ScenarioFields {
		name := scenarioFlagName(f)
		if !c.Flags().Changed(name) {
			continue
		}
		v, err := c.Flags().GetFloat64(name)
		if err != nil {
			return sc, err
		}
		sc = f.Set(sc, v)
	}
	return sc, nil
}

// applyAssignments applies "key=value" pairs to sc. Values are coerced
// like form input, so junk becomes 0.
func applyAssignments(sc model.ScenarioConfig, args []string) (model.ScenarioConfig, error) {
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return sc, fmt.Errorf("expected key=value, got %q", arg)
		}
		f, found := model.ScenarioFieldByKey(strings.TrimSpace(key))
		if !found {
			return sc, fmt.Errorf("unknown scenario key %q (want one of %s)", key, scenarioKeys())
		}
		sc = f.Set(sc, model.ParseNumber(val))
	}
	return sc, nil
}

func scenarioKeys() string {
	keys := make([]string, len(model.ScenarioFields))
	for i, f := range model.ScenarioFields {
		keys[i] = f.Key
	}
	return strings.Join(keys, ", ")
}

func runScenarioShow(c *cobra.Command, _ []string) error {
	sc, err := scenarioFromFlags(c)
	if err != nil {
		return err
	}
	printScenario(sc)
	return nil
}

func runScenarioSet(_ *cobra.Command, args []string) error {
	sc, err := applyAssignments(model.DefaultScenario(), args)
	if err != nil {
		return err
	}
	printScenario(sc)
	if flagScenarioSave {
		return saveScenario(sc, "Scenario saved successfully")
	}
	return nil
}

func runScenarioSave(c *cobra.Command, args []string) error {
	sc, err := scenarioFromFlags(c)
	if err != nil {
		return err
	}
	if sc, err = applyAssignments(sc, args); err != nil {
		return err
	}
	return saveScenario(sc, "Scenario saved successfully")
}

func runScenarioReset(_ *cobra.Command, _ []string) error {
	return saveScenario(model.DefaultScenario().ResetToDefaults(), "Reset to default values")
}

func saveScenario(sc model.ScenarioConfig, done string) error {
	cfg := loadConfig()
	log := newLogger(cfg, true)

	if err := store.SaveScenarioAt(flagStore, sc); err != nil {
		log.Error().Err(err).Str("path", flagStore).Msg("scenario save failed")
		return fmt.Errorf("saving scenario: %w", err)
	}
	log.Info().Str("path", flagStore).Msg("scenario saved")

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s (%s)\n", done, flagStore)
	}
	return nil
}

func printScenario(sc model.ScenarioConfig) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("SCENARIO"))
	fmt.Println()

	rows := [][]string{}
	group := ""
	for _, f := range model.ScenarioFields {
		if f.Group != group {
			if group != "" {
				rows = append(rows, []string{"---"})
			}
			group = f.Group
		}
		v := f.Get(sc)
		rows = append(rows, []string{
			f.Key,
			formatScenarioValue(f, v),
			formatScenarioValue(f, f.Min) + " - " + formatScenarioValue(f, f.Max),
			cli.RenderProgressBar(rangePct(f, v), 16),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Assumption", "Value", "Slider Range", ""},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Print(cli.RenderKV([][2]string{
		{"Total expenses", cli.FormatMoney(sc.TotalExpenses()) + "/mo"},
		{"Net cash flow", cli.FormatDelta(sc.NetCashFlow()) + "/mo"},
		{"Buffered runway", cli.FormatMonths(sc.BufferedRunway())},
	}))
	fmt.Println()
}

func rangePct(f model.ScenarioField, v float64) float64 {
	if f.Max <= f.Min {
		return 0
	}
	return (v - f.Min) / (f.Max - f.Min) * 100
}

func formatScenarioValue(f model.ScenarioField, v float64) string {
	switch {
	case f.Money:
		return cli.FormatMoney(v)
	case strings.HasSuffix(f.Key, "growth"):
		return cli.FormatPercent(v)
	default:
		return cli.FormatMonths(v)
	}
}
