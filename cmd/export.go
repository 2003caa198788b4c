package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/export"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a financial report (simulated, no file is written)",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var exportHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent exports",
	Args:  cobra.NoArgs,
	RunE:  runExportHistory,
}

var (
	flagExportFormat   string
	flagExportSections string
	flagExportDelay    time.Duration
)

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "pdf, csv or pptx (default from config)")
	exportCmd.Flags().StringVar(&flagExportSections, "sections", "", "Comma-separated sections: budget,funding,runway,scenarios,metrics (default all)")
	exportCmd.Flags().DurationVar(&flagExportDelay, "delay", 0, "Override the export delay (must be positive, e.g. 500ms)")

	exportCmd.AddCommand(exportHistoryCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(c *cobra.Command, _ []string) error {
	cfg := loadConfig()
	log := newLogger(cfg, true)

	name := flagExportFormat
	if name == "" {
		name = cfg.Export.DefaultFormat
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	sections, err := export.ParseSections(flagExportSections)
	if err != nil {
		return err
	}

	delay, err := exportDelay(cfg.Export.DelayMS, c.Flags().Changed("delay"), flagExportDelay)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	label := strings.ToUpper(string(format))
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Preparing %s export...\n", label)
	}

	ex := export.New(delay)
	rec, err := ex.Export(ctx, export.Request{Format: format, Sections: sections})
	if err != nil {
		log.Error().Err(err).Str("format", string(format)).Msg("export failed")
		if ctx.Err() != nil {
			return fmt.Errorf("export cancelled: %w", err)
		}
		return fmt.Errorf("failed to export report: %w", err)
	}
	log.Info().Str("file", rec.Name).Int("sections", sections.Count()).Msg("export finished")

	fmt.Printf("  %s report exported successfully as %s (%s)\n", label, rec.Name, rec.Size)
	return nil
}

// exportDelay picks the --delay override when set, else the configured
// milliseconds.
func exportDelay(configMS int, overridden bool, override time.Duration) (time.Duration, error) {
	if !overridden {
		return time.Duration(configMS) * time.Millisecond, nil
	}
	if override <= 0 {
		return 0, fmt.Errorf("--delay must be positive, got %s", override)
	}
	return override, nil
}

func runExportHistory(_ *cobra.Command, _ []string) error {
	history := export.New(0).History()

	rows := make([][]string, 0, len(history))
	for _, r := range history {
		rows = append(rows, []string{r.Name, cli.FormatDate(r.Date), r.Size})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recent Exports",
		Headers: []string{"File", "Date", "Size"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
