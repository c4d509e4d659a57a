package cmd

import (
	"fmt"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/cli"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the budget and how much of it is spent",
	Args:  cobra.NoArgs,
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the first budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSave(false),
}

var budgetEditCmd = &cobra.Command{
	Use:   "edit <amount>",
	Short: "Change the budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSave(true),
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetEditCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.requireReady(cmd.Context()); err != nil {
		return err
	}
	if err := s.tracker.Refresh(cmd.Context()); err != nil {
		progress("Showing cached expenses: %s", apperr.UserMessage(err))
	}

	totals := s.tracker.Totals()
	fmt.Println()
	fmt.Print(cli.RenderSummary(totals))
	fmt.Println()
	fmt.Printf("  %s\n\n", cli.RenderBudgetBar(totals, 40))
	return nil
}

func runBudgetSave(edit bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.requireAuth(); err != nil {
			return err
		}

		save := s.tracker.SetBudget
		if edit {
			save = s.tracker.EditBudget
		}
		b, err := save(cmd.Context(), args[0])
		if err != nil {
			if b.IsSet() {
				// Cached locally; the server copy is stale until the next save.
				progress("Budget cached locally but not saved on the server")
			}
			return err
		}
		fmt.Printf("  Budget set to %s\n", cli.FormatMoney(b.Total))
		return nil
	}
}
