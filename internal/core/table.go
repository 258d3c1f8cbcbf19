package core

// Sheet names shared by every storage backend.
const (
	SheetRevenues         = "Revenues"
	SheetExpenses         = "Expenses"
	SheetMonthlyProfits   = "Monthly Profits"
	SheetDetailedRevenues = "Detailed Revenues"
	SheetDetailedExpenses = "Detailed Expenses"
	SheetUnpaidDebts      = "Unpaid Debts Log"
	SheetMembers          = "Members"
	SheetAttendance       = "Attendance_Payments"
	SheetMembersUpdated   = "Members_Updated"
	ColumnMonth           = "Month"
	ColumnCategory        = "Category"
	ColumnAmount          = "Amount"
	ColumnTotal           = "Total"
	ColumnMemberID        = "MemberID"
	ColumnAttended        = "Attended"
	ColumnPaid            = "Paid"
	ColumnDiscount        = "Discount"
	ColumnMissedPayments  = "MissedPayments"
	ColumnPenalty         = "Penalty"
	ColumnUnpaid          = "Unpaid"
	ColumnUrgency         = "Urgency"
	ColumnTotalRevenue    = "Total Revenue"
	ColumnTotalExpense    = "Total Expense"
	ColumnNetProfit       = "Net Profit"
)

// AccountColumns is the header of the account store.
var AccountColumns = []string{"First Name", "Last Name", "Email", "Username", "Password", "Permissions"}

// Table is a named header + rows snapshot handed to storage adapters. Cell
// values are string, int or decimal.Decimal.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Ledger is the raw input of the financial pipeline.
type Ledger struct {
	Revenues []Transaction
	Expenses []Transaction
	// Warnings lists rows the loader excluded.
	Warnings []RowWarning
}

// Roster is the member workbook: members plus their attendance/payment log.
type Roster struct {
	MemberColumns     []string
	Members           []Member
	AttendanceColumns []string
	Attendance        []AttendanceRecord
}

func ProfitTable(r ProfitReport) Table {
	t := Table{
		Name:   SheetMonthlyProfits,
		Header: []string{ColumnMonth, ColumnTotalRevenue, ColumnTotalExpense, ColumnNetProfit},
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []any{string(row.Month), row.TotalRevenue, row.TotalExpense, row.NetProfit})
	}
	return t
}

func DetailedTable(name string, r DetailedReport) Table {
	header := make([]string, 0, len(r.Categories)+2)
	header = append(header, ColumnMonth)
	header = append(header, r.Categories...)
	header = append(header, ColumnTotal)

	t := Table{Name: name, Header: header}
	for _, row := range r.Rows {
		cells := make([]any, 0, len(header))
		cells = append(cells, string(row.Month))
		for _, c := range r.Categories {
			cells = append(cells, row.Amount(c))
		}
		cells = append(cells, row.Total)
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func UnpaidDebtsTable(debts []UnpaidDebt) Table {
	t := Table{
		Name:   SheetUnpaidDebts,
		Header: []string{ColumnMonth, ColumnCategory, ColumnUnpaid, ColumnUrgency},
	}
	for _, d := range debts {
		t.Rows = append(t.Rows, []any{string(d.Month), d.Category, d.Unpaid, string(d.Urgency)})
	}
	return t
}

// MembersTable renders the updated roster: the original member columns
// followed by Discount, MissedPayments and Penalty.
func MembersTable(r Roster) Table {
	header := make([]string, 0, len(r.MemberColumns)+3)
	for _, c := range r.MemberColumns {
		if c == ColumnDiscount || c == ColumnMissedPayments || c == ColumnPenalty {
			continue
		}
		header = append(header, c)
	}
	base := len(header)
	header = append(header, ColumnDiscount, ColumnMissedPayments, ColumnPenalty)

	t := Table{Name: SheetMembersUpdated, Header: header}
	for _, m := range r.Members {
		cells := make([]any, 0, len(header))
		for _, c := range header[:base] {
			cells = append(cells, m.Attributes[c])
		}
		cells = append(cells, m.Discount, m.MissedPayments, m.Penalty)
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func AttendanceTable(r Roster) Table {
	t := Table{Name: SheetAttendance, Header: append([]string(nil), r.AttendanceColumns...)}
	for _, rec := range r.Attendance {
		cells := make([]any, 0, len(t.Header))
		for _, c := range t.Header {
			cells = append(cells, rec.Attributes[c])
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func AccountsTable(name string, accounts []Account) Table {
	t := Table{Name: name, Header: append([]string(nil), AccountColumns...)}
	for _, a := range accounts {
		t.Rows = append(t.Rows, []any{a.FirstName, a.LastName, a.Email, a.Username, a.Password, string(a.Permissions)})
	}
	return t
}
