package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDetailedTableLayout(t *testing.T) {
	r := DetailedReport{
		Categories: []string{"Members Payments", "Sponsorship"},
		Rows: []DetailedRow{{
			Month:   March,
			Amounts: map[string]decimal.Decimal{"Members Payments": decimal.NewFromInt(100)},
			Total:   decimal.NewFromInt(100),
		}},
	}
	tbl := DetailedTable(SheetDetailedRevenues, r)
	want := []string{"Month", "Members Payments", "Sponsorship", "Total"}
	if fmt.Sprint(tbl.Header) != fmt.Sprint(want) {
		t.Fatalf("header: got %v", tbl.Header)
	}
	if len(tbl.Rows) != 1 || !tbl.Rows[0][2].(decimal.Decimal).IsZero() {
		t.Fatalf("missing category must render as zero: %v", tbl.Rows)
	}
}

func TestMembersTableReplacesDerivedColumns(t *testing.T) {
	r := Roster{
		MemberColumns: []string{"MemberID", "Name", "Discount"},
		Members: []Member{{
			ID:         "7",
			Attributes: map[string]string{"MemberID": "7", "Name": "Ada", "Discount": "stale"},
			Discount:   10,
			Penalty:    "Fee",
		}},
	}
	tbl := MembersTable(r)
	if fmt.Sprint(tbl.Header) != "[MemberID Name Discount MissedPayments Penalty]" {
		t.Fatalf("header: got %v", tbl.Header)
	}
	if fmt.Sprint(tbl.Rows[0]) != "[7 Ada 10 0 Fee]" {
		t.Fatalf("row: got %v", tbl.Rows[0])
	}
}

func TestDataSourceErrorMatching(t *testing.T) {
	err := fmt.Errorf("load: %w", &DataSourceError{Source: "club.xlsx", Sheet: "Revenues", Err: errors.New("sheet missing")})
	if !errors.Is(err, ErrDataSource) {
		t.Fatalf("expected ErrDataSource match")
	}
	var dse *DataSourceError
	if !errors.As(err, &dse) || dse.Sheet != "Revenues" {
		t.Fatalf("expected *DataSourceError, got %v", err)
	}
}
