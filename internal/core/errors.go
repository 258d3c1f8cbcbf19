package core

import (
	"errors"
	"fmt"
)

// ErrDataSource is matched by every *DataSourceError.
var ErrDataSource = errors.New("data source error")

// DataSourceError reports a missing or malformed input file or sheet.
type DataSourceError struct {
	Source string // file path or spreadsheet id
	Sheet  string
	Err    error
}

func (e *DataSourceError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("data source %s, sheet %q: %v", e.Source, e.Sheet, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}

// RowWarning describes an input row or report row that was left out of a
// computation.
type RowWarning struct {
	Sheet  string
	Row    int // 1-based sheet row; 0 when not tied to a sheet
	Month  Month
	Reason string
}

func (w RowWarning) String() string {
	if w.Row > 0 {
		return fmt.Sprintf("%s row %d: %s", w.Sheet, w.Row, w.Reason)
	}
	return fmt.Sprintf("%s month %q: %s", w.Sheet, w.Month, w.Reason)
}
