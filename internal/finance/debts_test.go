package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubfin/internal/core"
)

func TestClassifyUnpaidDebts_HallExpenses(t *testing.T) {
	expenses := []core.Transaction{
		tx(core.March, "Hall Expenses", "800"),
		tx(core.April, "Hall Expenses", "1500"),
	}

	debts := ClassifyUnpaidDebts(expenses, DefaultPolicy())

	require.Len(t, debts, 1)
	assert.Equal(t, core.March, debts[0].Month)
	assert.Equal(t, "Hall Expenses", debts[0].Category)
	assertDecimal(t, "700", debts[0].Unpaid)
	assert.Equal(t, core.UrgencyMedium, debts[0].Urgency)
}

func TestClassifyUnpaidDebts_UrgencyBoundaries(t *testing.T) {
	expenses := []core.Transaction{
		tx(core.January, "Coach Payments", "2000"),
		tx(core.February, "Coach Payments", "1500"), // 500
		tx(core.March, "Coach Payments", "1499.99"), // 500.01
		tx(core.April, "Coach Payments", "1000"),    // 1000
		tx(core.May, "Coach Payments", "999.99"),    // 1000.01
		tx(core.June, "Coach Payments", "1999.99"),  // 0.01
	}

	debts := ClassifyUnpaidDebts(expenses, DefaultPolicy())

	want := []struct {
		month   core.Month
		unpaid  string
		urgency core.Urgency
	}{
		{core.February, "500", core.UrgencyLow},
		{core.March, "500.01", core.UrgencyMedium},
		{core.April, "1000", core.UrgencyMedium},
		{core.May, "1000.01", core.UrgencyHigh},
		{core.June, "0.01", core.UrgencyLow},
	}
	require.Len(t, debts, len(want))
	for i, w := range want {
		assert.Equal(t, w.month, debts[i].Month)
		assertDecimal(t, w.unpaid, debts[i].Unpaid, w.month)
		assert.Equal(t, w.urgency, debts[i].Urgency, w.month)
	}
}

func TestClassifyUnpaidDebts_CategoriesAreIndependent(t *testing.T) {
	expenses := []core.Transaction{
		tx(core.January, "Hall Expenses", "300"),
		tx(core.January, "Coach Payments", "2500"),
		tx(core.February, "Hall Expenses", "250"),
		tx(core.February, "Coach Payments", "1000"),
		tx(core.February, "Equipment", "10"),
		tx(core.March, "Equipment", "9000"),
	}

	debts := ClassifyUnpaidDebts(expenses, DefaultPolicy())

	require.Len(t, debts, 2)
	assert.Equal(t, "Hall Expenses", debts[0].Category)
	assertDecimal(t, "50", debts[0].Unpaid)
	assert.Equal(t, core.UrgencyLow, debts[0].Urgency)
	assert.Equal(t, "Coach Payments", debts[1].Category)
	assertDecimal(t, "1500", debts[1].Unpaid)
	assert.Equal(t, core.UrgencyHigh, debts[1].Urgency)
	for _, d := range debts {
		assert.True(t, d.Unpaid.IsPositive())
	}
}

func TestClassifyUnpaidDebts_NoRecurringExpenses(t *testing.T) {
	debts := ClassifyUnpaidDebts([]core.Transaction{tx(core.May, "Equipment", "10")}, DefaultPolicy())
	assert.Empty(t, debts)
}

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		unpaid string
		want   core.Urgency
		isDebt bool
	}{
		{"-5", "", false},
		{"0", "", false},
		{"0.01", core.UrgencyLow, true},
		{"500", core.UrgencyLow, true},
		{"500.01", core.UrgencyMedium, true},
		{"1000", core.UrgencyMedium, true},
		{"1000.01", core.UrgencyHigh, true},
	}
	for _, tt := range tests {
		t.Run(tt.unpaid, func(t *testing.T) {
			got, ok := ClassifyUrgency(dec(tt.unpaid), DefaultPolicy())
			assert.Equal(t, tt.isDebt, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
