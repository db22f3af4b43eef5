// driftroids is a drifting-ship asteroid shooter for the terminal.
//
// Usage:
//
//	driftroids play          - Play in this terminal
//	driftroids serve         - Host the game over SSH
//	driftroids web           - Serve the high-score page
//	driftroids scores        - Print the high-score table
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.driftroids/configs, ./configs)
//	--db <path>         - Scores database (default: from config)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tomz197/driftroids/internal/config"
	"github.com/tomz197/driftroids/internal/storage"
)

var (
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "driftroids",
	Short: "Driftroids - steer a drifting ship through an asteroid field",
	Long: `Driftroids is an asteroid shooter played with the mouse in your terminal.
Click to aim, thrust and fire; clear the field to win the round.

Available commands:
  play     - Play in this terminal
  serve    - Host the game over SSH
  web      - Serve the high-score page
  scores   - Print the high-score table

Examples:
  driftroids play
  driftroids serve
  driftroids scores --csv > scores.csv`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig reads the config file and environment, then applies the flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger creates a timestamped logger writing to w at the configured level.
func newLogger(w io.Writer, cfg config.Config, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openStore opens the scores database. A failure is logged and high scores
// are disabled rather than aborting.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}
