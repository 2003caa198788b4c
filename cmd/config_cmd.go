package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Treasury]")
	fmt.Printf("    Cash:        %s\n", cli.FormatMoney(cfg.Treasury.Fiat))
	fmt.Printf("    Tokens:      %s\n", cli.FormatCompact(cfg.Treasury.Tokens))
	fmt.Printf("    Token value: %s\n", cli.FormatMoney(cfg.Treasury.TokenValue))
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Default format: %s\n", cfg.Export.DefaultFormat)
	fmt.Printf("    Delay:          %dms\n", cfg.Export.DelayMS)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level: %s\n", cfg.Logging.Level)
	fmt.Printf("    File:  %s\n", filepath.Join(config.CacheDir(), "runway.log"))
	fmt.Println()

	fmt.Printf("  Scenario store: %s\n", store.DefaultPath())
	fmt.Println()
	fmt.Println("  Run `runway setup` to reconfigure.")
	return nil
}
