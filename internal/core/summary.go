package core

import "github.com/shopspring/decimal"

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

type Urgency string

// DetailedRow is one month of a detailed report: the amount per category and
// the row total.
type DetailedRow struct {
	Month   Month
	Amounts map[string]decimal.Decimal
	Total   decimal.Decimal
}

// DetailedReport is the month x category pivot of a ledger. Categories keeps
// the order in which categories first appeared in the input.
type DetailedReport struct {
	Categories []string
	Rows       []DetailedRow
}

// ProfitRow is the revenue/expense summary for a single month.
type ProfitRow struct {
	Month        Month
	TotalRevenue decimal.Decimal
	TotalExpense decimal.Decimal
	NetProfit    decimal.Decimal
}

type ProfitReport struct {
	Rows []ProfitRow
}

// UnpaidDebt is a recurring-expense payment that fell short of the expected amount.
type UnpaidDebt struct {
	Month    Month
	Category string
	Unpaid   decimal.Decimal
	Urgency  Urgency
}

// AttendanceCount is the number of attended sessions per member.
type AttendanceCount struct {
	MemberID string
	Count    int
}

// Amount returns the row's value for category, zero when absent.
func (r DetailedRow) Amount(category string) decimal.Decimal {
	if v, ok := r.Amounts[category]; ok {
		return v
	}
	return decimal.Zero
}

// Row returns the row for month m.
func (r DetailedReport) Row(m Month) (DetailedRow, bool) {
	for _, row := range r.Rows {
		if row.Month == m {
			return row, true
		}
	}
	return DetailedRow{}, false
}

func (r DetailedReport) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// GrandTotal sums the Total column.
func (r DetailedReport) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, row := range r.Rows {
		total = total.Add(row.Total)
	}
	return total
}

func (r ProfitReport) Row(m Month) (ProfitRow, bool) {
	for _, row := range r.Rows {
		if row.Month == m {
			return row, true
		}
	}
	return ProfitRow{}, false
}
