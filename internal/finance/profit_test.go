package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubfin/internal/core"
)

func TestComputeProfit_MonthOnlyOnRevenueSide(t *testing.T) {
	revenue := AggregateDetails([]core.Transaction{tx(core.June, "Members Payments", "5000")}, core.January, DefaultPolicy())
	expense := AggregateDetails([]core.Transaction{tx(core.May, "Hall Expenses", "300")}, core.January, DefaultPolicy())

	report := ComputeProfit(revenue, expense)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, core.June, report.Rows[0].Month)
	assert.Equal(t, core.May, report.Rows[1].Month)

	june, _ := report.Row(core.June)
	assertDecimal(t, "5000", june.TotalRevenue)
	assertDecimal(t, "0", june.TotalExpense)
	assertDecimal(t, "5000", june.NetProfit)

	may, _ := report.Row(core.May)
	assertDecimal(t, "0", may.TotalRevenue)
	assertDecimal(t, "-300", may.NetProfit)
}

func TestComputeProfit_NetProfitIsExactDifference(t *testing.T) {
	revenue := AggregateDetails([]core.Transaction{
		tx(core.March, "Members Payments", "0.1"),
		tx(core.March, "Members Payments", "0.2"),
	}, core.January, DefaultPolicy())
	expense := AggregateDetails([]core.Transaction{
		tx(core.March, "Hall Expenses", "0.3"),
	}, core.January, DefaultPolicy())

	report := ComputeProfit(revenue, expense)

	for _, row := range report.Rows {
		assert.True(t, row.NetProfit.Equal(row.TotalRevenue.Sub(row.TotalExpense)))
	}
	march, _ := report.Row(core.March)
	assertDecimal(t, "0", march.NetProfit)
}

func TestComputeProfit_EmptyReports(t *testing.T) {
	report := ComputeProfit(core.DetailedReport{}, core.DetailedReport{})
	assert.Empty(t, report.Rows)
}
