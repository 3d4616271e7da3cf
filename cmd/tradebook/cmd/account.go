package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage journal accounts",
	Long: `Manage the isolated journal accounts this data directory holds.

The first account in the list is the one commands operate on by default;
pass --account <id> to any trade, settings, stats or import/export command
to work against another one.

Subcommands:
  list   - List accounts, marking the current one
  add    - Create a new account
  remove - Delete an account and its data directory

Examples:
  tradebook account list
  tradebook account add "Prop Firm"
  tradebook account remove prop_firm`,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountAdd,
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <account-id>",
	Short: "Delete an account and all of its data",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountRemove,
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountRemoveCmd)
}

func runAccountList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	current := sess.Registry.Current()
	for _, a := range sess.Registry.List() {
		marker := " "
		if a.ID == current.ID {
			marker = "*"
		}
		fmt.Printf("%s %-24s %s\n", marker, a.ID, a.Name)
	}
	return nil
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	a := sess.Registry.Add(args[0])
	fmt.Printf("✓ Created account %q (id %s)\n", a.Name, a.ID)
	return nil
}

func runAccountRemove(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	for _, a := range sess.Registry.List() {
		if a.ID == args[0] {
			sess.Remove(a)
			fmt.Printf("✓ Removed account %q\n", a.Name)
			fmt.Printf("Current account is now %q\n", sess.Registry.Current().Name)
			return nil
		}
	}
	return fmt.Errorf("unknown account %q", args[0])
}
