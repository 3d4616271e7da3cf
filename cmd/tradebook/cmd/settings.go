package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and edit account settings",
	Long: `Show and edit the current account's settings record: starting balance,
risk target, trading rules, symbol list and the setup/entry-type tag
catalogs.

Examples:
  tradebook settings show
  tradebook settings set --balance 25000 --risk 0.5
  tradebook settings symbol add US30
  tradebook settings tag add setup breakout`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the account settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update balance, risk or trading rules",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSet,
}

var settingsSymbolAddCmd = &cobra.Command{
	Use:   "add <symbol>",
	Short: "Append a symbol to the watch list",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsSymbolAdd,
}

var settingsSymbolCmd = &cobra.Command{
	Use:   "symbol",
	Short: "Manage the symbol list",
}

var settingsTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage the setup and entry-type tag catalogs",
}

var settingsTagAddCmd = &cobra.Command{
	Use:   "add <setup|entry> <name>",
	Short: "Append a tag to a catalog",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsTagAdd,
}

var (
	settingsBalance float64
	settingsRisk    float64
	settingsRules   string
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSymbolCmd)
	settingsCmd.AddCommand(settingsTagCmd)
	settingsSymbolCmd.AddCommand(settingsSymbolAddCmd)
	settingsTagCmd.AddCommand(settingsTagAddCmd)

	f := settingsSetCmd.Flags()
	f.Float64Var(&settingsBalance, "balance", -1, "starting account balance")
	f.Float64Var(&settingsRisk, "risk", -1, "average risk percent per trade")
	f.StringVar(&settingsRules, "rules", "", "trading rules text")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	s := sess.Store().Settings()
	fmt.Printf("Account: %s\n", sess.Registry.Current().Name)
	fmt.Printf("  Balance:     $%.2f\n", s.AccountBalance)
	fmt.Printf("  Risk:        %.2f%%\n", s.AverageRisk)
	fmt.Printf("  Symbols:     %s\n", strings.Join(s.Symbols, ", "))
	fmt.Printf("  Setups:      %s\n", strings.Join(s.SetupNames(), ", "))
	fmt.Printf("  Entry types: %s\n", strings.Join(s.EntryTypeNames(), ", "))
	fmt.Printf("  Rules:\n")
	for _, line := range strings.Split(s.TradingRules, "\n") {
		fmt.Printf("    %s\n", line)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	st := sess.Store()
	s := st.Settings()
	if settingsBalance >= 0 {
		s.AccountBalance = settingsBalance
	}
	if settingsRisk >= 0 {
		s.AverageRisk = settingsRisk
	}
	if settingsRules != "" {
		s.TradingRules = settingsRules
	}

	if err := st.UpdateSettings(); err != nil {
		return err
	}
	fmt.Println("✓ Settings saved")
	return nil
}

func runSettingsSymbolAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	st := sess.Store()
	st.Settings().AddSymbol(args[0])
	if err := st.UpdateSettings(); err != nil {
		return err
	}
	fmt.Printf("✓ Added symbol %s\n", args[0])
	return nil
}

func runSettingsTagAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	st := sess.Store()
	s := st.Settings()
	switch args[0] {
	case "setup":
		s.SetSetupTags(append(s.SetupTags, journal.NewTag(args[1])))
	case "entry":
		s.SetEntryTypeTags(append(s.EntryTypeTags, journal.NewTag(args[1])))
	default:
		return fmt.Errorf("catalog must be %q or %q", "setup", "entry")
	}

	if err := st.UpdateSettings(); err != nil {
		return err
	}
	fmt.Printf("✓ Added %s tag %q\n", args[0], args[1])
	return nil
}
