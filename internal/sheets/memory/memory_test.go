package memory

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"clubfin/internal/core"
	applog "clubfin/internal/log"
)

func TestMemoryStoreAccounts(t *testing.T) {
	ctx := context.Background()
	s := New(core.Ledger{})
	if err := s.AddAccount(ctx, core.Account{Username: "ada"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	accounts, err := s.ListAccounts(ctx)
	if err != nil || len(accounts) != 1 {
		t.Fatalf("unexpected list: %v err=%v", accounts, err)
	}
	accounts[0].Username = "mutated"
	if again, _ := s.ListAccounts(ctx); again[0].Username != "ada" {
		t.Fatalf("list must return a copy")
	}
	if ok, _ := s.RemoveAccount(ctx, "ada"); !ok {
		t.Fatalf("expected removal")
	}
	if ok, _ := s.RemoveAccount(ctx, "ada"); ok {
		t.Fatalf("second removal must report not found")
	}
}

func TestMemoryStoreTables(t *testing.T) {
	s := New(core.Ledger{})
	tbl := core.Table{Name: core.SheetUnpaidDebts, Header: []string{"Month"}}
	if err := s.WriteTables(context.Background(), tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, ok := s.Table(core.SheetUnpaidDebts); !ok || got.Header[0] != "Month" {
		t.Fatalf("unexpected table: %+v %v", got, ok)
	}
}

func TestNewFromFilesSeedsLedger(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(&logs, nil)})

	// No files -> empty ledger, each missing file logged
	store, err := NewFromFiles(dir, logger)
	if err != nil {
		t.Fatalf("missing seed files must not fail: %v", err)
	}
	ledger, _ := store.LoadLedger(context.Background())
	if len(ledger.Revenues) != 0 || len(ledger.Expenses) != 0 {
		t.Fatalf("expected empty ledger when files missing")
	}
	if strings.Count(logs.String(), "Seed file missing") != 2 {
		t.Fatalf("expected both missing seed files logged, got %q", logs.String())
	}

	mustWrite := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite("seed_revenues.txt", "# Month|Category|Amount\nJune|Members Payments|5000\n\nJune|Members Payments|oops\n")
	mustWrite("seed_expenses.txt", "March|Hall Expenses|800\nApril|Hall Expenses|1500\n")

	store, err = NewFromFiles(dir, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	ledger, _ = store.LoadLedger(context.Background())
	if len(ledger.Revenues) != 1 || !ledger.Revenues[0].Amount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected revenues: %+v", ledger.Revenues)
	}
	if len(ledger.Expenses) != 2 {
		t.Fatalf("unexpected expenses: %+v", ledger.Expenses)
	}
	if len(ledger.Warnings) != 1 || ledger.Warnings[0].Sheet != core.SheetRevenues {
		t.Fatalf("unexpected warnings: %+v", ledger.Warnings)
	}
}

func TestNewFromFilesUnreadableSeed(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "seed_expenses.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := NewFromFiles(dir, nil)
	var dse *core.DataSourceError
	if !errors.As(err, &dse) || dse.Sheet != core.SheetExpenses {
		t.Fatalf("expected Expenses data source error, got %v", err)
	}
}
