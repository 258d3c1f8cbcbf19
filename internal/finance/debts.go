package finance

import (
	"github.com/shopspring/decimal"

	"clubfin/internal/core"
)

// ClassifyUnpaidDebts checks every payment in the recurring categories
// against the largest payment seen in that category and reports the
// shortfalls, in input order. Exact payments and overpayments are not debts.
//
// The expected amount is the historical maximum, not a configured rate, so a
// category whose rate went down will flag every later month.
func ClassifyUnpaidDebts(expenses []core.Transaction, policy Policy) []core.UnpaidDebt {
	recurring := make(map[string]struct{}, len(policy.RecurringCategories))
	for _, c := range policy.RecurringCategories {
		recurring[c] = struct{}{}
	}

	expected := make(map[string]decimal.Decimal)
	for _, tx := range expenses {
		if _, ok := recurring[tx.Category]; !ok {
			continue
		}
		if cur, ok := expected[tx.Category]; !ok || tx.Amount.GreaterThan(cur) {
			expected[tx.Category] = tx.Amount
		}
	}

	var debts []core.UnpaidDebt
	for _, tx := range expenses {
		want, ok := expected[tx.Category]
		if !ok {
			continue
		}
		unpaid := want.Sub(tx.Amount)
		urgency, isDebt := ClassifyUrgency(unpaid, policy)
		if !isDebt {
			continue
		}
		debts = append(debts, core.UnpaidDebt{
			Month:    tx.Month,
			Category: tx.Category,
			Unpaid:   unpaid,
			Urgency:  urgency,
		})
	}
	return debts
}

// ClassifyUrgency maps an unpaid amount to its tier. The second result is
// false when unpaid is not positive.
//
//	unpaid > high            -> High
//	medium < unpaid <= high  -> Medium
//	0 < unpaid <= medium     -> Low
func ClassifyUrgency(unpaid decimal.Decimal, policy Policy) (core.Urgency, bool) {
	switch {
	case !unpaid.IsPositive():
		return "", false
	case unpaid.GreaterThan(policy.HighThreshold):
		return core.UrgencyHigh, true
	case unpaid.GreaterThan(policy.MediumThreshold):
		return core.UrgencyMedium, true
	default:
		return core.UrgencyLow, true
	}
}
