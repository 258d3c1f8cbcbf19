package finance

import "clubfin/internal/core"

// IncomeStatement bundles every report produced from one ledger snapshot.
type IncomeStatement struct {
	CurrentMonth     core.Month
	Profits          core.ProfitReport // twelve months, calendar order
	DetailedRevenues core.DetailedReport
	DetailedExpenses core.DetailedReport
	UnpaidDebts      []core.UnpaidDebt
	Warnings         []core.RowWarning
}

// PrepareIncomeStatement runs the whole pipeline over a ledger.
func PrepareIncomeStatement(ledger core.Ledger, currentMonth core.Month, policy Policy) IncomeStatement {
	revenues := AggregateDetails(ledger.Revenues, currentMonth, policy)
	expenses := AggregateDetails(ledger.Expenses, currentMonth, policy)
	profits, warnings := NormalizeMonths(ComputeProfit(revenues, expenses))

	all := make([]core.RowWarning, 0, len(ledger.Warnings)+len(warnings))
	all = append(all, ledger.Warnings...)
	all = append(all, warnings...)

	return IncomeStatement{
		CurrentMonth:     currentMonth,
		Profits:          profits,
		DetailedRevenues: revenues,
		DetailedExpenses: expenses,
		UnpaidDebts:      ClassifyUnpaidDebts(ledger.Expenses, policy),
		Warnings:         all,
	}
}

// Tables returns the four report sheets in the order they are written.
func (s IncomeStatement) Tables() []core.Table {
	return []core.Table{
		core.ProfitTable(s.Profits),
		core.DetailedTable(core.SheetDetailedRevenues, s.DetailedRevenues),
		core.DetailedTable(core.SheetDetailedExpenses, s.DetailedExpenses),
		core.UnpaidDebtsTable(s.UnpaidDebts),
	}
}
