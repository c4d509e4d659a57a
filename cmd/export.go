package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/gastos/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses as CSV or a PDF statement",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "csv", "Output format: csv or pdf")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (csv defaults to stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(flagExportFormat)
	if format != "csv" && format != "pdf" {
		return fmt.Errorf("unknown export format %q (want csv or pdf)", flagExportFormat)
	}

	s, err := loadReady(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	expenses := s.tracker.Expenses()
	report.SortByDate(expenses)
	totals := s.tracker.Totals()
	now := time.Now()

	if format == "csv" {
		if flagExportOutput == "" || flagExportOutput == "-" {
			return report.WriteCSV(os.Stdout, expenses, totals)
		}
		return writeExport(flagExportOutput, func(w io.Writer) error {
			return report.WriteCSV(w, expenses, totals)
		})
	}

	profile, err := s.tracker.FetchProfile(cmd.Context())
	if err != nil {
		profile = s.tracker.Profile()
	}
	data, err := report.BuildPDF(expenses, totals, profile, now)
	if err != nil {
		return err
	}
	out := flagExportOutput
	if out == "" {
		out = fmt.Sprintf("gastos-%s.pdf", now.Format("2006-01-02"))
	}
	return writeExport(out, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeExport(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	//nolint:gosec // export path is chosen by the local user
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	progress("Wrote %s", path)
	return nil
}
