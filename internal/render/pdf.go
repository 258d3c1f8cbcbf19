package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"clubfin/internal/core"
	"clubfin/internal/finance"
)

const pageWidth = 277.0 // A4 landscape minus 10mm margins

// IncomeStatementPDF renders the income statement as a landscape A4 PDF: the
// monthly profit table, both detailed reports and the unpaid debt log.
func IncomeStatementPDF(st finance.IncomeStatement, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Income Statement", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Income Statement")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Current month: %s", st.CurrentMonth))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generated.Format(time.RFC3339)))
	pdf.Ln(9)

	tables := []core.Table{
		core.ProfitTable(st.Profits),
		core.DetailedTable(core.SheetDetailedRevenues, st.DetailedRevenues),
		core.DetailedTable(core.SheetDetailedExpenses, st.DetailedExpenses),
		core.UnpaidDebtsTable(st.UnpaidDebts),
	}
	for _, t := range tables {
		writePDFTable(pdf, t)
	}

	if len(st.Warnings) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Rows left out (%d)", len(st.Warnings)))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 8)
		for _, w := range st.Warnings {
			pdf.MultiCell(0, 4, w.String(), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFTable(pdf *gofpdf.Fpdf, t core.Table) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, t.Name)
	pdf.Ln(8)
	if len(t.Header) == 0 {
		return
	}

	width := pageWidth / float64(len(t.Header))
	fontSize := 9.0
	if len(t.Header) > 8 {
		fontSize = 7
	}

	pdf.SetFont("Arial", "B", fontSize)
	for _, h := range t.Header {
		pdf.CellFormat(width, 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", fontSize)
	for _, row := range t.Rows {
		for i, v := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(width, 6, cell(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(t.Rows) == 0 {
		pdf.CellFormat(pageWidth, 6, "(none)", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}
