// Package cmd implements the runway CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/logging"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDebug bool
	flagQuiet bool
	flagStore string
)

var rootCmd = &cobra.Command{
	Use:          "runway",
	Short:        "Financial planning dashboard for early-stage ventures",
	Long:         "Plan budget, funding rounds and cash runway from the terminal.",
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging (also to stderr for CLI commands)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", store.DefaultPath(), "Scenario store (SQLite)")
}

// loadConfig returns the user's config, or defaults when the file is
// unreadable.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// newLogger builds the logger for one invocation. console enables stderr
// output under --debug; the TUI passes false since it owns the terminal.
func newLogger(cfg config.Config, console bool) zerolog.Logger {
	lc := logging.DefaultLogConfig(config.CacheDir())
	lc.Level = cfg.Logging.Level
	if flagDebug {
		lc.Level = "debug"
		lc.Console = console
	}
	return logging.New(lc)
}
