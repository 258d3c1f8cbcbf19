package finance

import (
	"github.com/shopspring/decimal"

	"clubfin/internal/core"
)

// ComputeProfit outer-joins the revenue and expense totals by month. A month
// missing on one side counts as zero on that side. Revenue months come first
// in their report order, followed by expense-only months.
func ComputeProfit(revenue, expense core.DetailedReport) core.ProfitReport {
	var report core.ProfitReport
	index := make(map[core.Month]int)

	add := func(m core.Month, rev, exp decimal.Decimal) {
		i, ok := index[m]
		if !ok {
			i = len(report.Rows)
			index[m] = i
			report.Rows = append(report.Rows, core.ProfitRow{
				Month:        m,
				TotalRevenue: decimal.Zero,
				TotalExpense: decimal.Zero,
			})
		}
		row := &report.Rows[i]
		row.TotalRevenue = row.TotalRevenue.Add(rev)
		row.TotalExpense = row.TotalExpense.Add(exp)
	}

	for _, row := range revenue.Rows {
		add(row.Month, row.Total, decimal.Zero)
	}
	for _, row := range expense.Rows {
		add(row.Month, decimal.Zero, row.Total)
	}
	for i := range report.Rows {
		row := &report.Rows[i]
		row.NetProfit = row.TotalRevenue.Sub(row.TotalExpense)
	}
	return report
}
