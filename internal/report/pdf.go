package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/model"
)

// BuildPDF renders a one-page A4 statement: header, totals, category
// breakdown and the expense list.
func BuildPDF(expenses []model.Expense, totals model.Totals, profile model.Profile, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Gastos statement", true)
	pdf.SetCreationDate(now)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Gastos statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	who := profile.Name
	if profile.Email != "" {
		who = fmt.Sprintf("%s <%s>", profile.Name, profile.Email)
	}
	if who != "" {
		pdf.Cell(0, 7, tr("User: "+who))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, "Generated: "+now.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(60, 8, tr("Budget: "+cli.FormatMoney(totals.Total)))
	pdf.Cell(60, 8, tr("Spent: "+cli.FormatMoney(totals.Spent)))
	pdf.Cell(0, 8, tr("Remaining: "+cli.FormatMoney(totals.Remaining)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("%d%% of the budget used", totals.Percentage))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Category Breakdown")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(80, 7, "Category")
	pdf.Cell(20, 7, "Items")
	pdf.Cell(45, 7, "Amount")
	pdf.Cell(20, 7, "%")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, c := range ByCategory(expenses) {
		pdf.Cell(80, 7, tr(c.Name))
		pdf.Cell(20, 7, fmt.Sprintf("%d", c.Count))
		pdf.Cell(45, 7, tr(cli.FormatMoney(c.Amount)))
		pdf.Cell(20, 7, fmt.Sprintf("%d%%", c.Percent))
		pdf.Ln(7)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Expenses")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(28, 6, "Date")
	pdf.Cell(70, 6, "Name")
	pdf.Cell(50, 6, "Category")
	pdf.CellFormat(35, 6, "Amount", "", 0, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range expenses {
		pdf.Cell(28, 6, e.Date)
		pdf.Cell(70, 6, tr(cli.Truncate(e.Name, 36)))
		pdf.Cell(50, 6, tr(cli.Truncate(e.CategoryName, 24)))
		pdf.CellFormat(35, 6, tr(cli.FormatMoney(e.Amount)), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
