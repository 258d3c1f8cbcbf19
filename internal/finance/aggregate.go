package finance

import (
	"github.com/shopspring/decimal"

	"clubfin/internal/core"
)

// AggregateDetails pivots records into one row per month and one column per
// category, then credits the current month's advance payments into its
// members payments cell.
//
// Rows and columns keep first-seen input order. Cells with no records are zero.
// Row totals are the sum of the row's records, so the grand total always
// equals the sum of the input unless policy.LegacyDoubleCount is set.
func AggregateDetails(records []core.Transaction, currentMonth core.Month, policy Policy) core.DetailedReport {
	var report core.DetailedReport
	rowIndex := make(map[core.Month]int)
	seen := make(map[string]struct{})

	for _, tx := range records {
		if _, ok := seen[tx.Category]; !ok {
			seen[tx.Category] = struct{}{}
			report.Categories = append(report.Categories, tx.Category)
		}
		i, ok := rowIndex[tx.Month]
		if !ok {
			i = len(report.Rows)
			rowIndex[tx.Month] = i
			report.Rows = append(report.Rows, core.DetailedRow{
				Month:   tx.Month,
				Amounts: make(map[string]decimal.Decimal),
			})
		}
		row := &report.Rows[i]
		row.Amounts[tx.Category] = row.Amount(tx.Category).Add(tx.Amount)
	}

	for i := range report.Rows {
		row := &report.Rows[i]
		for _, c := range report.Categories {
			row.Amounts[c] = row.Amount(c)
		}
		row.Total = rowTotal(*row, report.Categories)
	}

	creditAdvance(&report, currentMonth, policy)
	return report
}

// creditAdvance adds the advance column of the current month's row into its
// members column. The advance column stays in place.
func creditAdvance(report *core.DetailedReport, currentMonth core.Month, policy Policy) {
	if !report.HasCategory(policy.AdvanceCategory) {
		return
	}
	i := -1
	for j, row := range report.Rows {
		if row.Month == currentMonth {
			i = j
			break
		}
	}
	if i < 0 {
		return
	}
	if !report.HasCategory(policy.MembersCategory) {
		report.Categories = append(report.Categories, policy.MembersCategory)
		for j := range report.Rows {
			report.Rows[j].Amounts[policy.MembersCategory] = decimal.Zero
		}
	}

	row := &report.Rows[i]
	advance := row.Amount(policy.AdvanceCategory)
	row.Amounts[policy.MembersCategory] = row.Amount(policy.MembersCategory).Add(advance)
	if policy.LegacyDoubleCount {
		row.Total = rowTotal(*row, report.Categories)
	}
}

func rowTotal(row core.DetailedRow, categories []string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(row.Amount(c))
	}
	return total
}
