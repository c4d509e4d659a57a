package cmd

import (
	"fmt"

	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/report"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "List and manage categories",
	Args:    cobra.NoArgs,
	RunE:    runCategoriesList,
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with what was spent in each",
	Args:  cobra.NoArgs,
	RunE:  runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesAdd,
}

var categoriesRmCmd = &cobra.Command{
	Use:     "rm <name-or-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a category",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoriesRm,
}

func init() {
	categoriesRmCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd, categoriesRmCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cats := s.tracker.Categories()
	if len(cats) == 0 {
		fmt.Println("\n  No categories yet. Add one with: gastos categories add <name>")
		return nil
	}

	spent := map[string]report.CategoryTotal{}
	for _, c := range report.ByCategory(s.tracker.Expenses()) {
		spent[c.Name] = c
	}

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		t := spent[c.Name]
		rows = append(rows, []string{c.Name, fmt.Sprintf("%d", t.Count), cli.FormatMoney(t.Amount), c.ID})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      "Categories",
		Headers:    []string{"Category", "Expenses", "Spent", "ID"},
		Rows:       rows,
		RightAlign: map[int]bool{1: true, 2: true},
	}))
	fmt.Println()
	return nil
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.tracker.CreateCategory(cmd.Context(), args[0])
	if err != nil && c.ID == "" {
		return err
	}
	fmt.Printf("  Created category %s\n", c.Name)
	return err
}

func runCategoriesRm(cmd *cobra.Command, args []string) error {
	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := findCategory(s.tracker.Categories(), args[0])
	if err != nil {
		return err
	}
	if ok, err := confirm(fmt.Sprintf("Delete category %q?", c.Name)); err != nil || !ok {
		return err
	}
	if err := s.tracker.DeleteCategory(cmd.Context(), c.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted category %s\n", c.Name)
	return nil
}
