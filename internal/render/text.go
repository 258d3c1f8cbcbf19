// Package render formats reports for the terminal and as PDF documents.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"clubfin/internal/core"
	"clubfin/internal/finance"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// WriteTable prints t as right-aligned columns under a title line.
func WriteTable(w io.Writer, title string, t core.Table) error {
	if _, err := fmt.Fprintf(w, "%s:\n", title); err != nil {
		return err
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, strings.Join(t.Header, "\t")+"\t")
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	if len(t.Rows) == 0 {
		fmt.Fprintln(tw, "(none)\t")
	}
	return tw.Flush()
}

// WriteFinancialReports prints the detailed revenues, detailed expenses and
// net profit tables.
func WriteFinancialReports(w io.Writer, st finance.IncomeStatement) error {
	sections := []struct {
		title string
		table core.Table
	}{
		{"DETAILED REVENUE", core.DetailedTable(core.SheetDetailedRevenues, st.DetailedRevenues)},
		{"DETAILED EXPENSES", core.DetailedTable(core.SheetDetailedExpenses, st.DetailedExpenses)},
		{"NET PROFITS", core.ProfitTable(st.Profits)},
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := WriteTable(w, s.title, s.table); err != nil {
			return err
		}
	}
	return WriteWarnings(w, st.Warnings)
}

func WriteUnpaidDebts(w io.Writer, debts []core.UnpaidDebt) error {
	return WriteTable(w, "UNPAID DEBTS", core.UnpaidDebtsTable(debts))
}

// WriteWarnings lists the rows left out of the reports, if any.
func WriteWarnings(w io.Writer, warnings []core.RowWarning) error {
	if len(warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%d row(s) left out:\n", len(warnings)); err != nil {
		return err
	}
	for _, warn := range warnings {
		if _, err := fmt.Fprintf(w, "  - %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}

func cell(v any) string {
	switch x := v.(type) {
	case decimal.Decimal:
		return core.FormatAmount(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
