// Package finance turns raw revenue and expense records into the club's
// monthly reports: detailed category pivots, monthly profit, and the unpaid
// debt log for recurring expenses.
package finance

import "github.com/shopspring/decimal"

// Policy holds the category names and thresholds the pipeline depends on.
type Policy struct {
	// AdvanceCategory is credited into MembersCategory for the current month.
	AdvanceCategory string
	MembersCategory string
	// LegacyDoubleCount adds the credited advance to the row total a second
	// time, reproducing the historical report totals.
	LegacyDoubleCount bool

	// RecurringCategories are checked for underpayment against their maximum.
	RecurringCategories []string
	MediumThreshold     decimal.Decimal
	HighThreshold       decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		AdvanceCategory:     "Advance Member Payments",
		MembersCategory:     "Members Payments",
		RecurringCategories: []string{"Hall Expenses", "Coach Payments"},
		MediumThreshold:     decimal.NewFromInt(500),
		HighThreshold:       decimal.NewFromInt(1000),
	}
}
