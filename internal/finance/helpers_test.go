package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"clubfin/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(m core.Month, category, amount string) core.Transaction {
	return core.Transaction{Month: m, Category: category, Amount: dec(amount)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "want %s, got %s %v", want, got, msgAndArgs)
}

func sumAmounts(records []core.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
