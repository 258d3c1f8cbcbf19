package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubfin/internal/core"
)

func TestNormalizeMonths_FillsAndOrders(t *testing.T) {
	in := core.ProfitReport{Rows: []core.ProfitRow{
		{Month: core.December, TotalRevenue: dec("10"), TotalExpense: dec("4"), NetProfit: dec("6")},
		{Month: core.February, TotalRevenue: dec("0"), TotalExpense: dec("7"), NetProfit: dec("-7")},
	}}

	out, warnings := NormalizeMonths(in)

	assert.Empty(t, warnings)
	require.Len(t, out.Rows, 12)
	for i, row := range out.Rows {
		assert.Equal(t, core.Months[i], row.Month)
	}
	assertDecimal(t, "6", out.Rows[11].NetProfit)
	assertDecimal(t, "-7", out.Rows[1].NetProfit)
	assertDecimal(t, "0", out.Rows[0].TotalRevenue)
	assertDecimal(t, "0", out.Rows[0].NetProfit)
}

func TestNormalizeMonths_AlwaysTwelveRows(t *testing.T) {
	out, _ := NormalizeMonths(core.ProfitReport{})
	assert.Len(t, out.Rows, 12)

	var full core.ProfitReport
	for _, m := range core.Months {
		full.Rows = append(full.Rows, core.ProfitRow{Month: m, TotalRevenue: decimal.NewFromInt(1), TotalExpense: decimal.Zero, NetProfit: decimal.NewFromInt(1)})
	}
	out, _ = NormalizeMonths(full)
	assert.Len(t, out.Rows, 12)
}

func TestNormalizeMonths_ReportsNonCanonicalMonths(t *testing.T) {
	in := core.ProfitReport{Rows: []core.ProfitRow{
		{Month: "Smarch", TotalRevenue: dec("99"), TotalExpense: dec("0"), NetProfit: dec("99")},
		{Month: core.March, TotalRevenue: dec("1"), TotalExpense: dec("0"), NetProfit: dec("1")},
	}}

	out, warnings := NormalizeMonths(in)

	require.Len(t, warnings, 1)
	assert.Equal(t, core.Month("Smarch"), warnings[0].Month)
	assert.Len(t, out.Rows, 12)
	march, _ := out.Row(core.March)
	assertDecimal(t, "1", march.TotalRevenue)
}
