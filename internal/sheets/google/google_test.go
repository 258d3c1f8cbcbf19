package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"clubfin/internal/core"
)

const testSpreadsheet = "sheet-123"

type fakeSheets struct {
	mu     sync.Mutex
	values map[string][][]any
	// formatted is served instead of values when the request does not ask
	// for unformatted values, the way the API applies number formats.
	formatted map[string][][]any
	cleared   []string
	updated   map[string][][]any
	added     []string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		var req gsheet.BatchUpdateSpreadsheetRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, rq := range req.Requests {
			if rq.AddSheet != nil {
				f.added = append(f.added, rq.AddSheet.Properties.Title)
			}
		}
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":clear"):
		f.cleared = append(f.cleared, rangeName(strings.TrimSuffix(path, ":clear")))
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodPut:
		var vr gsheet.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&vr)
		f.updated[rangeName(path)] = vr.Values
		_, _ = w.Write([]byte(`{}`))
	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		name := rangeName(path)
		vals, ok := f.values[name]
		if shown, has := f.formatted[name]; has && r.URL.Query().Get("valueRenderOption") != "UNFORMATTED_VALUE" {
			vals = shown
		}
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Unable to parse range"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"range": name, "values": vals})
	case r.Method == http.MethodGet:
		type props struct {
			Title string `json:"title"`
		}
		type sheet struct {
			Properties props `json:"properties"`
		}
		var sheets []sheet
		for name := range f.values {
			sheets = append(sheets, sheet{Properties: props{Title: name}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sheets": sheets})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func rangeName(path string) string {
	_, after, _ := strings.Cut(path, "/values/")
	return strings.Trim(after, "'")
}

func newTestClient(t *testing.T, values map[string][][]any) (*Client, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{values: values, updated: map[string][][]any{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithHTTPClient(srv.Client()),
		goption.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	c, err := New(svc, testSpreadsheet, nil)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c, fake
}

func TestLoadLedger(t *testing.T) {
	c, _ := newTestClient(t, map[string][][]any{
		core.SheetRevenues: {
			{"Month", "Category", "Amount"},
			{"June", "Members Payments", 5000},
			{"June", "Donations", "abc"},
		},
		core.SheetExpenses: {
			{"Month", "Category", "Amount"},
			{"March", "Hall Expenses", 800.5},
		},
	})

	ledger, err := c.LoadLedger(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ledger.Revenues) != 1 || !ledger.Revenues[0].Amount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected revenues: %+v", ledger.Revenues)
	}
	if len(ledger.Expenses) != 1 || !ledger.Expenses[0].Amount.Equal(decimal.RequireFromString("800.5")) {
		t.Fatalf("unexpected expenses: %+v", ledger.Expenses)
	}
	if len(ledger.Warnings) != 1 || ledger.Warnings[0].Row != 3 {
		t.Fatalf("unexpected warnings: %+v", ledger.Warnings)
	}
}

func TestLoadLedgerReadsUnformattedAmounts(t *testing.T) {
	c, fake := newTestClient(t, map[string][][]any{
		core.SheetRevenues: {
			{"Month", "Category", "Amount"},
			{"June", "Members Payments", 1e6},
		},
		core.SheetExpenses: {
			{"Month", "Category", "Amount"},
			{"March", "Hall Expenses", 1500},
		},
	})
	fake.formatted = map[string][][]any{
		core.SheetRevenues: {
			{"Month", "Category", "Amount"},
			{"June", "Members Payments", "1,000,000"},
		},
		core.SheetExpenses: {
			{"Month", "Category", "Amount"},
			{"March", "Hall Expenses", "1,500"},
		},
	}

	ledger, err := c.LoadLedger(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ledger.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", ledger.Warnings)
	}
	if len(ledger.Revenues) != 1 || !ledger.Revenues[0].Amount.Equal(decimal.NewFromInt(1000000)) {
		t.Fatalf("unexpected revenues: %+v", ledger.Revenues)
	}
	if len(ledger.Expenses) != 1 || !ledger.Expenses[0].Amount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected expenses: %+v", ledger.Expenses)
	}
}

func TestToStringsFormatsNumbersPlainly(t *testing.T) {
	got := toStrings([]interface{}{1e6, 800.5, float64(-20), " June ", true})
	want := []string{"1000000", "800.5", "-20", "June", "true"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadLedgerMissingSheet(t *testing.T) {
	c, _ := newTestClient(t, map[string][][]any{
		core.SheetRevenues: {{"Month", "Category", "Amount"}},
	})
	_, err := c.LoadLedger(context.Background())
	if !errors.Is(err, core.ErrDataSource) {
		t.Fatalf("expected data source error, got %v", err)
	}
	var dse *core.DataSourceError
	if !errors.As(err, &dse) || dse.Sheet != core.SheetExpenses {
		t.Fatalf("expected Expenses sheet in error, got %v", err)
	}
}

func TestWriteTablesAddsMissingSheets(t *testing.T) {
	c, fake := newTestClient(t, map[string][][]any{
		core.SheetRevenues:       {{"Month", "Category", "Amount"}},
		core.SheetMonthlyProfits: {{"stale"}},
	})
	profits := core.ProfitTable(core.ProfitReport{Rows: []core.ProfitRow{{
		Month:        core.June,
		TotalRevenue: decimal.NewFromInt(5000),
		TotalExpense: decimal.NewFromInt(1200),
		NetProfit:    decimal.NewFromInt(3800),
	}}})
	debts := core.UnpaidDebtsTable(nil)

	if err := c.WriteTables(context.Background(), profits, debts); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(fake.added) != 1 || fake.added[0] != core.SheetUnpaidDebts {
		t.Fatalf("expected only the debts sheet to be added, got %v", fake.added)
	}
	if len(fake.cleared) != 2 {
		t.Fatalf("expected both sheets cleared, got %v", fake.cleared)
	}
	got := fake.updated[core.SheetMonthlyProfits]
	if len(got) != 2 || got[1][0] != "June" || got[1][3] != float64(3800) {
		t.Fatalf("unexpected profit values: %v", got)
	}
}

func TestSheetRangeQuotesNames(t *testing.T) {
	if got := sheetRange("Monthly Profits"); got != "'Monthly Profits'" {
		t.Fatalf("got %q", got)
	}
	if got := sheetRange("Bob's"); got != "'Bob''s'" {
		t.Fatalf("got %q", got)
	}
}

func TestNewRejectsMissingInputs(t *testing.T) {
	if _, err := New(nil, testSpreadsheet, nil); err == nil {
		t.Fatalf("expected error for nil service")
	}
	if _, err := New(&gsheet.Service{}, "  ", nil); err == nil {
		t.Fatalf("expected error for empty spreadsheet id")
	}
}
