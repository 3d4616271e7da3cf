package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the trade collection",
	Long: `Export the current account's trades.

Subcommands:
  csv    - Write the legacy-compatible CSV interchange file
  sqlite - Snapshot the collection into a SQLite database

Examples:
  tradebook export csv -o trades.csv
  tradebook export sqlite -o trades.db`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export trades to a CSV file",
	Args:  cobra.NoArgs,
	RunE:  runExportCSV,
}

var exportSQLiteCmd = &cobra.Command{
	Use:   "sqlite",
	Short: "Snapshot trades into a SQLite database",
	Args:  cobra.NoArgs,
	RunE:  runExportSQLite,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import trades",
	Long: `Import trades into the current account.

Subcommands:
  csv - Read a CSV interchange file (legacy column layouts tolerated)

Examples:
  tradebook import csv -f trades.csv --mode append
  tradebook import csv -f trades.csv --mode replace`,
}

var importCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Import trades from a CSV file",
	Args:  cobra.NoArgs,
	RunE:  runImportCSV,
}

var (
	exportCSVPath    string
	exportSQLitePath string
	importCSVPath    string
	importMode       string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportSQLiteCmd)
	importCmd.AddCommand(importCSVCmd)

	exportCSVCmd.Flags().StringVarP(&exportCSVPath, "output", "o", "trades.csv", "output CSV file path")
	exportSQLiteCmd.Flags().StringVarP(&exportSQLitePath, "output", "o", "trades.db", "output SQLite database path")
	importCSVCmd.Flags().StringVarP(&importCSVPath, "file", "f", "", "CSV file to import (required)")
	importCSVCmd.Flags().StringVarP(&importMode, "mode", "m", "append", "replace or append")
	importCSVCmd.MarkFlagRequired("file")
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	f, err := os.Create(exportCSVPath)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	trades := sess.Store().Trades()
	if err := journal.ExportCSV(f, trades); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	fmt.Printf("✓ Exported %d trades to %s\n", len(trades), exportCSVPath)
	return nil
}

func runExportSQLite(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	db, err := journal.NewSQLite(exportSQLitePath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	trades := sess.Store().Trades()
	if err := db.SnapshotTrades(trades); err != nil {
		return fmt.Errorf("snapshot trades: %w", err)
	}

	fmt.Printf("✓ Snapshotted %d trades into %s\n", len(trades), exportSQLitePath)
	return nil
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	if importMode != "replace" && importMode != "append" {
		return fmt.Errorf("mode must be %q or %q", "replace", "append")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	f, err := os.Open(importCSVPath)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	trades, skipped, err := journal.ImportCSV(f)
	if err != nil {
		return fmt.Errorf("import csv: %w", err)
	}
	if len(trades) == 0 {
		fmt.Println("No valid trades found in the import file.")
		return nil
	}

	st := sess.Store()
	if importMode == "replace" {
		err = st.ReplaceTrades(trades)
	} else {
		err = st.AppendTrades(trades)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d trades (%s mode)", len(trades), importMode)
	if skipped > 0 {
		fmt.Printf(", skipped %d malformed rows", skipped)
	}
	fmt.Println()
	return nil
}
