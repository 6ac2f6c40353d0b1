package payroll

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"emsconsole/internal/gateway"
)

// StatementName is the download name of a rendered statement.
const StatementName = "payroll-statement.pdf"

// RenderStatement writes user's payroll history as a table with a totals row.
func RenderStatement(w io.Writer, user gateway.User, history History) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payroll Statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", strings.TrimSpace(user.FirstName+" "+user.LastName)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", user.Email))
	pdf.Ln(10)

	headers := []string{"Month", "Basic", "Allowance", "Deduction", "Net", "Status"}
	widths := []float64{30, 30, 30, 30, 30, 30}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range history.Records {
		row := []string{
			monthLabel(p),
			money(p.BasicSalary),
			money(p.Allowance),
			money(p.Deduction),
			money(p.NetSalary),
			p.PayrollStatus,
		}
		for i, cell := range row {
			align := "R"
			if i == 0 || i == len(row)-1 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	totals := []string{
		fmt.Sprintf("%d months", history.Summary.Months),
		money(history.Summary.BasicSalary),
		money(history.Summary.Allowance),
		money(history.Summary.Deduction),
		money(history.Summary.NetSalary),
		"",
	}
	for i, cell := range totals {
		pdf.CellFormat(widths[i], 8, cell, "1", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)

	return pdf.Output(w)
}

func monthLabel(p gateway.Payroll) string {
	if p.Month != "" {
		return p.Month
	}
	if len(p.CreatedAt) >= 7 {
		return p.CreatedAt[:7]
	}
	return "-"
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
