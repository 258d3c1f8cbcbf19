// Package excel stores the club's ledger, reports, roster and accounts in
// .xlsx workbooks.
package excel

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"clubfin/internal/core"
	ports "clubfin/internal/sheets"
)

// Workbook is a single .xlsx file holding input sheets and generated reports.
// The file is opened for every call, so edits made in a spreadsheet program
// between calls are picked up.
type Workbook struct {
	path string
}

// Ensure interface conformance
var (
	_ ports.LedgerReader = (*Workbook)(nil)
	_ ports.TableWriter  = (*Workbook)(nil)
	_ ports.RosterReader = (*Workbook)(nil)
)

func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

func (w *Workbook) Path() string {
	return w.path
}

// LoadLedger reads the Revenues and Expenses sheets.
func (w *Workbook) LoadLedger(_ context.Context) (core.Ledger, error) {
	f, err := w.open()
	if err != nil {
		return core.Ledger{}, err
	}
	defer f.Close()

	var ledger core.Ledger
	for _, sheet := range []string{core.SheetRevenues, core.SheetExpenses} {
		rows, err := w.rows(f, sheet)
		if err != nil {
			return core.Ledger{}, err
		}
		txs, warnings, err := ports.ParseLedgerSheet(sheet, rows)
		if err != nil {
			return core.Ledger{}, &core.DataSourceError{Source: w.path, Sheet: sheet, Err: err}
		}
		if sheet == core.SheetRevenues {
			ledger.Revenues = txs
		} else {
			ledger.Expenses = txs
		}
		ledger.Warnings = append(ledger.Warnings, warnings...)
	}
	return ledger, nil
}

// LoadRoster reads the Members and Attendance_Payments sheets.
func (w *Workbook) LoadRoster(_ context.Context) (core.Roster, error) {
	f, err := w.open()
	if err != nil {
		return core.Roster{}, err
	}
	defer f.Close()

	var roster core.Roster
	rows, err := w.rows(f, core.SheetMembers)
	if err != nil {
		return core.Roster{}, err
	}
	if roster.MemberColumns, roster.Members, err = ports.ParseMembersSheet(rows); err != nil {
		return core.Roster{}, &core.DataSourceError{Source: w.path, Sheet: core.SheetMembers, Err: err}
	}

	rows, err = w.rows(f, core.SheetAttendance)
	if err != nil {
		return core.Roster{}, err
	}
	if roster.AttendanceColumns, roster.Attendance, err = ports.ParseAttendanceSheet(rows); err != nil {
		return core.Roster{}, &core.DataSourceError{Source: w.path, Sheet: core.SheetAttendance, Err: err}
	}
	return roster, nil
}

// WriteTables replaces each table's sheet and saves the workbook, creating
// the file when it does not exist yet.
func (w *Workbook) WriteTables(_ context.Context, tables ...core.Table) error {
	f, err := openOrCreate(w.path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, t := range tables {
		if err := writeTable(f, t); err != nil {
			return fmt.Errorf("write sheet %q: %w", t.Name, err)
		}
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, &core.DataSourceError{Source: w.path, Err: err}
	}
	return f, nil
}

func (w *Workbook) rows(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, &core.DataSourceError{Source: w.path, Sheet: sheet, Err: errors.New("sheet not found")}
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &core.DataSourceError{Source: w.path, Sheet: sheet, Err: err}
	}
	return rows, nil
}

func openOrCreate(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return f, nil
}

// writeTable replaces the contents of the sheet named after the table.
func writeTable(f *excelize.File, t core.Table) error {
	if err := clearSheet(f, t.Name); err != nil {
		return err
	}
	for i, row := range ports.CellValues(t) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// clearSheet empties the named sheet in place, creating it when missing, so
// existing sheets keep their position in the workbook.
func clearSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx == -1 {
		_, err := f.NewSheet(name)
		return err
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	for r := len(rows); r >= 1; r-- {
		if err := f.RemoveRow(name, r); err != nil {
			return err
		}
	}
	return nil
}
