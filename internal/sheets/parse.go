package sheets

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"clubfin/internal/core"
)

// ParseLedgerSheet reads a Revenues/Expenses matrix whose first row is the
// header. Rows with an unknown month, an empty category or a non-numeric
// amount are skipped and reported; blank rows are ignored. A header without
// the Month, Category and Amount columns is an error.
func ParseLedgerSheet(sheet string, rows [][]string) ([]core.Transaction, []core.RowWarning, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	cols, err := requireColumns(rows[0], core.ColumnMonth, core.ColumnCategory, core.ColumnAmount)
	if err != nil {
		return nil, nil, err
	}
	colMonth, colCategory, colAmount := cols[0], cols[1], cols[2]

	var (
		out      []core.Transaction
		warnings []core.RowWarning
	)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		rowNum := i + 1
		rawMonth := strings.TrimSpace(SafeGet(row, colMonth))
		month, err := core.ParseMonth(rawMonth)
		if err != nil {
			warnings = append(warnings, core.RowWarning{Sheet: sheet, Row: rowNum, Month: core.Month(rawMonth),
				Reason: fmt.Sprintf("unrecognized month %q", rawMonth)})
			continue
		}
		category := strings.TrimSpace(SafeGet(row, colCategory))
		if category == "" {
			warnings = append(warnings, core.RowWarning{Sheet: sheet, Row: rowNum, Month: month, Reason: "empty category"})
			continue
		}
		rawAmount := SafeGet(row, colAmount)
		amount, err := core.ParseAmount(rawAmount)
		if err != nil {
			warnings = append(warnings, core.RowWarning{Sheet: sheet, Row: rowNum, Month: month,
				Reason: fmt.Sprintf("amount %q is not a number", strings.TrimSpace(rawAmount))})
			continue
		}
		out = append(out, core.Transaction{Month: month, Category: category, Amount: amount})
	}
	return out, warnings, nil
}

// ParseMembersSheet reads the Members matrix. Every column is kept as an
// attribute so the roster can be written back unchanged.
func ParseMembersSheet(rows [][]string) ([]string, []core.Member, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", core.SheetMembers)
	}
	header := trimAll(rows[0])
	cols, err := requireColumns(header, core.ColumnMemberID)
	if err != nil {
		return nil, nil, err
	}
	var members []core.Member
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		members = append(members, core.Member{
			ID:         strings.TrimSpace(SafeGet(row, cols[0])),
			Attributes: attributes(header, row),
		})
	}
	return header, members, nil
}

func ParseAttendanceSheet(rows [][]string) ([]string, []core.AttendanceRecord, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", core.SheetAttendance)
	}
	header := trimAll(rows[0])
	cols, err := requireColumns(header, core.ColumnMemberID, core.ColumnAttended, core.ColumnPaid)
	if err != nil {
		return nil, nil, err
	}
	var records []core.AttendanceRecord
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		records = append(records, core.AttendanceRecord{
			MemberID:   strings.TrimSpace(SafeGet(row, cols[0])),
			Attended:   strings.TrimSpace(SafeGet(row, cols[1])),
			Paid:       strings.TrimSpace(SafeGet(row, cols[2])),
			Attributes: attributes(header, row),
		})
	}
	return header, records, nil
}

// ParseAccountsSheet reads the account store. An empty sheet is an empty store.
func ParseAccountsSheet(rows [][]string) ([]core.Account, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols, err := requireColumns(rows[0], core.AccountColumns...)
	if err != nil {
		return nil, err
	}
	var out []core.Account
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		perm := strings.TrimSpace(SafeGet(row, cols[5]))
		if p, err := core.ParsePermission(perm); err == nil {
			perm = string(p)
		}
		out = append(out, core.Account{
			FirstName:   strings.TrimSpace(SafeGet(row, cols[0])),
			LastName:    strings.TrimSpace(SafeGet(row, cols[1])),
			Email:       strings.TrimSpace(SafeGet(row, cols[2])),
			Username:    strings.TrimSpace(SafeGet(row, cols[3])),
			Password:    SafeGet(row, cols[4]),
			Permissions: core.Permission(perm),
		})
	}
	return out, nil
}

// CellValues flattens a table (header first) into sheet cell values.
// Decimals become float64 so spreadsheets treat them as numbers.
func CellValues(t core.Table) [][]any {
	out := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	out = append(out, header)
	for _, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				cells[i] = d.InexactFloat64()
				continue
			}
			cells[i] = v
		}
		out = append(out, cells)
	}
	return out
}

// IndexOf finds target in headers ignoring case and surrounding spaces.
func IndexOf(headers []string, target string) int {
	for i, v := range headers {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func SafeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

func requireColumns(header []string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, n := range names {
		idx[i] = IndexOf(header, n)
		if idx[i] == -1 {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected header: missing %s; got headers=%v", strings.Join(missing, ","), header)
	}
	return idx, nil
}

func attributes(header, row []string) map[string]string {
	attrs := make(map[string]string, len(header))
	for i, h := range header {
		if h == "" {
			continue
		}
		attrs[h] = strings.TrimSpace(SafeGet(row, i))
	}
	return attrs
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
