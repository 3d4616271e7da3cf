package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/internal/logging"
	"github.com/rustyeddy/tradebook/store"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "A multi-account trading journal",
	Long: `Tradebook records executed trades per account, tags them with setup and
entry-type metadata, and persists everything for later analysis.

It provides tools for:
  - Managing isolated journal accounts
  - Recording, editing and deleting trades
  - Per-account settings, symbols and tag catalogs
  - Win-rate, P&L and equity-curve statistics
  - CSV import/export compatible with legacy journal exports
  - SQLite snapshots for ad-hoc SQL analysis`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	flagConfig  string
	flagDataDir string
	flagAccount string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "journal data directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagAccount, "account", "a", "", "account id to operate on (default: first account)")
}

// openSession builds the configured logger, registry and active-account
// store, switching to --account when given. Every command goes through
// here so the data directory is resolved the same way everywhere.
func openSession() (*store.Session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}

	logger := logging.New(cfg.LogLevel)
	sess := store.NewSession(cfg.DataDir, logger, printNotice)

	if flagAccount != "" && flagAccount != sess.Registry.Current().ID {
		if err := sess.Use(flagAccount); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func printNotice(msg string) {
	fmt.Printf("! %s\n", msg)
}
