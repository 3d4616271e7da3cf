package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and manage trades",
	Long: `Record executed trades in the current account's journal.

Subcommands:
  add    - Record a closed trade
  list   - List the account's trades
  delete - Delete a trade by ID

Examples:
  tradebook trade add --symbol EURUSD --side LONG --entry 1.1000 --exit 1.1050 --size 2 --returns 50
  tradebook trade list
  tradebook trade delete 01J9W2Z3...`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a closed trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's trades",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var (
	tradeDate      string
	tradeSymbol    string
	tradeSide      string
	tradeEntry     float64
	tradeExit      float64
	tradeSize      float64
	tradeReturns   float64
	tradeBalance   float64
	tradeSetup     string
	tradeEntryType string
	tradeDuration  string
	tradeNotes     string
	tradeImages    []string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	f := tradeAddCmd.Flags()
	f.StringVar(&tradeDate, "date", time.Now().Format("2006-01-02"), "trade date (YYYY-MM-DD)")
	f.StringVar(&tradeSymbol, "symbol", "", "instrument symbol")
	f.StringVar(&tradeSide, "side", journal.Long, "LONG or SHORT")
	f.Float64Var(&tradeEntry, "entry", 0, "entry price")
	f.Float64Var(&tradeExit, "exit", 0, "exit price")
	f.Float64Var(&tradeSize, "size", 0, "position size")
	f.Float64Var(&tradeReturns, "returns", 0, "realized P&L (signed)")
	f.Float64Var(&tradeBalance, "balance", 0, "account balance at trade time")
	f.StringVar(&tradeSetup, "setup", "", "setup tag")
	f.StringVar(&tradeEntryType, "entry-type", "", "entry type tag")
	f.StringVar(&tradeDuration, "duration", "", "trade duration, free text")
	f.StringVar(&tradeNotes, "notes", "", "trade notes")
	f.StringArrayVar(&tradeImages, "image", nil, "image file to attach (repeatable)")
	tradeAddCmd.MarkFlagRequired("symbol")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", tradeDate)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	st := sess.Store()
	t := journal.NewTrade("", date, tradeDuration, tradeSymbol,
		tradeEntry, tradeExit, tradeSize, tradeSide, tradeSetup,
		tradeEntryType, tradeReturns, tradeBalance)
	t.Notes = tradeNotes

	for _, img := range tradeImages {
		stored, err := st.SaveAttachment(img)
		if err != nil {
			return err
		}
		t.AddImage(stored)
	}

	if err := st.AddTrade(t); err != nil {
		return err
	}
	fmt.Printf("✓ Recorded %s %s trade %s (%s, %+.2f)\n",
		t.Side, t.Symbol, t.ID, t.RefreshStatus(), t.Returns)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	trades := sess.Store().Trades()
	if len(trades) == 0 {
		fmt.Println("No trades recorded.")
		return nil
	}

	fmt.Printf("%-26s %-10s %-10s %-6s %10s %10s %8s %9s %7s  %s\n",
		"ID", "DATE", "SYMBOL", "SIDE", "ENTRY", "EXIT", "SIZE", "RETURNS", "STATUS", "SETUP")
	for _, t := range trades {
		fmt.Printf("%-26s %-10s %-10s %-6s %10.5f %10.5f %8.2f %+9.2f %7s  %s\n",
			t.ID, t.Date.Format("2006-01-02"), t.Symbol, t.Side,
			t.Entry, t.Exit, t.Size, t.Returns, t.RefreshStatus(), t.Setup)
	}
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	st := sess.Store()
	t, ok := st.FindTrade(args[0])
	if !ok {
		return fmt.Errorf("trade %q not found", args[0])
	}
	if err := st.DeleteTrade(t); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted trade %s\n", t.ID)
	return nil
}
