package finance

import (
	"github.com/shopspring/decimal"

	"clubfin/internal/core"
)

// NormalizeMonths returns a report with exactly the twelve canonical months in
// calendar order. Months absent from report are zero-filled. Rows whose month
// is not a canonical name cannot be placed and are returned as warnings
// instead.
func NormalizeMonths(report core.ProfitReport) (core.ProfitReport, []core.RowWarning) {
	var normalized core.ProfitReport
	normalized.Rows = make([]core.ProfitRow, len(core.Months))
	for i, m := range core.Months {
		normalized.Rows[i] = core.ProfitRow{
			Month:        m,
			TotalRevenue: decimal.Zero,
			TotalExpense: decimal.Zero,
			NetProfit:    decimal.Zero,
		}
	}

	var warnings []core.RowWarning
	for _, row := range report.Rows {
		i := row.Month.Index()
		if i < 0 {
			warnings = append(warnings, core.RowWarning{
				Sheet:  core.SheetMonthlyProfits,
				Month:  row.Month,
				Reason: "month is not a calendar month name; row left out of the monthly report",
			})
			continue
		}
		n := &normalized.Rows[i]
		n.TotalRevenue = n.TotalRevenue.Add(row.TotalRevenue)
		n.TotalExpense = n.TotalExpense.Add(row.TotalExpense)
		n.NetProfit = n.TotalRevenue.Sub(n.TotalExpense)
	}
	return normalized, warnings
}
