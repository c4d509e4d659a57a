package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/model"
	"github.com/theirongolddev/gastos/internal/report"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagExpName        string
	flagExpAmount      string
	flagExpDate        string
	flagExpCategory    string
	flagExpDescription string
	flagExpFilter      string
	flagExpLimit       int
	flagYes            bool
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"exp"},
	Short:   "List and manage expenses",
	Args:    cobra.NoArgs,
	RunE:    runExpensesList,
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	Args:  cobra.NoArgs,
	RunE:  runExpensesList,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Args:  cobra.NoArgs,
	RunE:  runExpensesAdd,
}

var expensesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an expense; omitted flags keep their values",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesEdit,
}

var expensesRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpensesRm,
}

func init() {
	for _, c := range []*cobra.Command{expensesAddCmd, expensesEditCmd} {
		c.Flags().StringVar(&flagExpName, "name", "", "Expense name")
		c.Flags().StringVar(&flagExpAmount, "amount", "", "Amount, e.g. 12.50")
		c.Flags().StringVar(&flagExpDate, "date", "", "Date as YYYY-MM-DD (add defaults to today)")
		c.Flags().StringVarP(&flagExpCategory, "category", "c", "", "Category name or id")
		c.Flags().StringVar(&flagExpDescription, "description", "", "Free-form note")
	}

	for _, c := range []*cobra.Command{expensesCmd, expensesListCmd} {
		c.Flags().StringVarP(&flagExpFilter, "category", "c", "", "Only this category (name or id)")
		c.Flags().IntVarP(&flagExpLimit, "limit", "n", 0, "Show at most n rows")
	}
	expensesRmCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	expensesCmd.AddCommand(expensesListCmd, expensesAddCmd, expensesEditCmd, expensesRmCmd)
	rootCmd.AddCommand(expensesCmd)
}

// loadReady opens a session, checks both gates and refreshes the lists.
// A failed refresh falls back to the cached lists with a note.
func loadReady(cmd *cobra.Command) (*session, error) {
	s, err := openSession(false)
	if err != nil {
		return nil, err
	}
	if err := s.requireReady(cmd.Context()); err != nil {
		s.Close()
		return nil, err
	}
	progress("Loading expenses...")
	if err := s.tracker.Refresh(cmd.Context()); err != nil {
		if !apperr.IsNetwork(err) {
			s.Close()
			return nil, err
		}
		progress("Showing cached data: %s", apperr.UserMessage(err))
	}
	return s, nil
}

func runExpensesList(cmd *cobra.Command, _ []string) error {
	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	list := s.tracker.Expenses()
	if flagExpFilter != "" {
		cat, err := findCategory(s.tracker.Categories(), flagExpFilter)
		if err != nil {
			return err
		}
		filtered := list[:0]
		for _, e := range list {
			if cat.Matches(e.CategoryID) || strings.EqualFold(e.CategoryName, cat.Name) {
				filtered = append(filtered, e)
			}
		}
		list = filtered
	}
	report.SortByDate(list)
	if flagExpLimit > 0 && len(list) > flagExpLimit {
		list = list[:flagExpLimit]
	}

	if len(list) == 0 {
		fmt.Println("\n  No expenses yet. Add one with: gastos expenses add --name ... --amount ...")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, e := range list {
		cat := e.CategoryName
		if cat == "" {
			cat = "-"
		}
		rows = append(rows, []string{
			cli.FormatDate(e.Date, s.cfg.General.DateFormat),
			cli.Truncate(e.Name, 28),
			cli.Truncate(cat, 16),
			cli.FormatMoney(e.Amount),
			e.ID,
		})
	}

	totals := s.tracker.Totals()
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      fmt.Sprintf("Expenses (%s)", cli.Plural(len(list), "expense", "expenses")),
		Headers:    []string{"Date", "Name", "Category", "Amount", "ID"},
		Rows:       rows,
		RightAlign: map[int]bool{3: true},
	}))
	fmt.Printf("  %s spent, %s left\n\n", cli.FormatMoney(totals.Spent), cli.FormatMoney(totals.Remaining))
	return nil
}

func runExpensesAdd(cmd *cobra.Command, _ []string) error {
	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	d := model.ExpenseDraft{
		Name:        flagExpName,
		Amount:      flagExpAmount,
		Date:        flagExpDate,
		Description: flagExpDescription,
	}
	if d.Date == "" {
		d.Date = time.Now().Format("2006-01-02")
	}
	if flagExpCategory != "" {
		cat, err := findCategory(s.tracker.Categories(), flagExpCategory)
		if err != nil {
			return err
		}
		d.CategoryID = cat.ID
	}

	e, err := s.tracker.CreateExpense(cmd.Context(), d)
	if err != nil && e.ID == "" {
		return err
	}
	fmt.Printf("  Added %s (%s)\n", e.Name, cli.FormatMoney(e.Amount))
	printRemaining(s)
	return err
}

func runExpensesEdit(cmd *cobra.Command, args []string) error {
	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	current, ok := s.tracker.Expense(args[0])
	if !ok {
		return apperr.Validation("id", "unknown expense "+args[0])
	}

	d := model.DraftFrom(current)
	f := cmd.Flags()
	if f.Changed("name") {
		d.Name = flagExpName
	}
	if f.Changed("amount") {
		d.Amount = flagExpAmount
	}
	if f.Changed("date") {
		d.Date = flagExpDate
	}
	if f.Changed("description") {
		d.Description = flagExpDescription
	}
	if f.Changed("category") {
		cat, err := findCategory(s.tracker.Categories(), flagExpCategory)
		if err != nil {
			return err
		}
		d.CategoryID = cat.ID
	}

	e, err := s.tracker.UpdateExpense(cmd.Context(), current.ID, d)
	if err != nil && e.ID == "" {
		return err
	}
	fmt.Printf("  Updated %s (%s)\n", e.Name, cli.FormatMoney(e.Amount))
	printRemaining(s)
	return err
}

func runExpensesRm(cmd *cobra.Command, args []string) error {
	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	e, ok := s.tracker.Expense(args[0])
	if !ok {
		return apperr.Validation("id", "unknown expense "+args[0])
	}
	prompt := fmt.Sprintf("Delete %q (%s)?", e.Name, cli.FormatMoney(e.Amount))
	if ok, err := confirm(prompt); err != nil || !ok {
		return err
	}

	if err := s.tracker.DeleteExpense(cmd.Context(), e.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s\n", e.Name)
	printRemaining(s)
	return nil
}

func printRemaining(s *session) {
	t := s.tracker.Totals()
	fmt.Printf("  %s\n", cli.RenderBudgetBar(t, 30))
}

// confirm asks a yes/no question. --yes and non-interactive stdin skip it.
func confirm(title string) (bool, error) {
	if flagYes || !term.IsTerminal(int(os.Stdin.Fd())) {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

// findCategory matches ref against ids first, then names, case-insensitively.
func findCategory(cats []model.Category, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	for _, c := range cats {
		if c.Matches(ref) {
			return c, nil
		}
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return model.Category{}, apperr.Validation("category", fmt.Sprintf("no category named %q", ref))
}
