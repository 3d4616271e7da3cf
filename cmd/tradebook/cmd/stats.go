package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show account statistics",
	Long: `Compute win rate, P&L, setup distribution and the best and worst trades
for the current account.

Examples:
  tradebook stats
  tradebook stats --account prop_firm`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	trades := sess.Store().Trades()
	s := journal.Summarize(trades)

	fmt.Printf("Account: %s\n", sess.Registry.Current().Name)
	fmt.Printf("  Total Trades:   %d\n", s.TotalTrades)
	fmt.Printf("  Winning Trades: %d\n", s.WinningTrades)
	fmt.Printf("  Losing Trades:  %d\n", s.LosingTrades)
	fmt.Printf("  Win Rate:       %.2f%%\n", s.WinRate)
	fmt.Printf("  Total P&L:      $%.2f\n", s.TotalReturns)
	fmt.Printf("  Avg Win:        $%.2f\n", s.AvgWin)
	fmt.Printf("  Avg Loss:       $%.2f\n", s.AvgLoss)
	if s.RiskRewardOK {
		fmt.Printf("  Risk-Reward:    %.2f\n", s.RiskReward)
	} else {
		fmt.Printf("  Risk-Reward:    N/A\n")
	}

	if setups := journal.CountBySetup(trades); len(setups) > 0 {
		fmt.Println("\nTrades by setup:")
		names := make([]string, 0, len(setups))
		for name := range setups {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			label := name
			if label == "" {
				label = "(untagged)"
			}
			fmt.Printf("  %-20s %d\n", label, setups[name])
		}
	}

	printTopTrades("Best trades:", journal.BestTrades(trades))
	printTopTrades("Worst trades:", journal.WorstTrades(trades))
	return nil
}

func printTopTrades(title string, trades []*journal.Trade) {
	if len(trades) == 0 {
		return
	}
	fmt.Printf("\n%s\n", title)
	for _, t := range trades {
		fmt.Printf("  %s %-10s %-6s %+10.2f  %s\n",
			t.Date.Format("2006-01-02"), t.Symbol, t.Side, t.Returns, t.Setup)
	}
}
