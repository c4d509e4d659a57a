package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/report"
)

var flagSummaryDays int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget overview with spending by category",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().IntVarP(&flagSummaryDays, "days", "n", 14, "Days in the spending trend")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	totals := s.tracker.Totals()
	expenses := s.tracker.Expenses()

	fmt.Println()
	fmt.Println(cli.RenderTitle("GASTOS  " + s.tracker.Session().Email))
	fmt.Println()

	// Donut on the left, figures on the right.
	donut := strings.Split(strings.TrimRight(cli.RenderDonut(totals, 4), "\n"), "\n")
	figures := strings.Split(strings.TrimRight(cli.RenderSummary(totals), "\n"), "\n")
	figures = append(figures, "", "  "+cli.RenderBudgetBar(totals, 24))
	for i := 0; i < max(len(donut), len(figures)); i++ {
		left, right := "", ""
		if i < len(donut) {
			left = donut[i]
		}
		if i < len(figures) {
			right = figures[i]
		}
		fmt.Printf("  %s   %s\n", left, right)
	}
	fmt.Println()

	if len(expenses) == 0 {
		fmt.Println("  No expenses yet. Add one with: gastos expenses add")
		return nil
	}

	days := max(flagSummaryDays, 2)
	series := report.DailySpend(expenses, time.Now(), 2*days)
	prev, curr := sum(series[:days]), sum(series[days:])
	fmt.Printf("  Last %dd  %s  %s", days, cli.RenderSparkline(series[days:]), cli.FormatMoney(curr))
	if prev.IsPositive() {
		fmt.Printf("  (%s vs prev %dd)", cli.FormatDelta(curr, prev), days)
	}
	fmt.Println()
	fmt.Println()

	breakdown := report.ByCategory(expenses)
	top := breakdown[0].Amount
	for _, c := range breakdown {
		fmt.Printf("%s %3d%%\n", cli.RenderHorizontalBar(c.Name, c.Amount, top, 30), c.Percent)
	}
	fmt.Println()
	return nil
}

func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
