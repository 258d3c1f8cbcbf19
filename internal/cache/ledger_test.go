package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubfin/internal/core"
	"clubfin/internal/sheets/memory"
)

type countingReader struct {
	calls int
	err   error
}

func (r *countingReader) LoadLedger(context.Context) (core.Ledger, error) {
	r.calls++
	if r.err != nil {
		return core.Ledger{}, r.err
	}
	return core.Ledger{Revenues: []core.Transaction{{Month: core.May, Category: "Donations"}}}, nil
}

func TestLedgerCacheTTL(t *testing.T) {
	reader := &countingReader{}
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := NewLedger(reader, memory.New(core.Ledger{}), time.Minute)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := c.LoadLedger(context.Background()); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	if reader.calls != 1 {
		t.Fatalf("expected 1 upstream read, got %d", reader.calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.LoadLedger(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if reader.calls != 2 {
		t.Fatalf("expected refetch after ttl, got %d reads", reader.calls)
	}
}

func TestLedgerCacheKeptAcrossReportWrites(t *testing.T) {
	reader := &countingReader{}
	writer := memory.New(core.Ledger{})
	c := NewLedger(reader, writer, time.Hour)
	ctx := context.Background()

	_, _ = c.LoadLedger(ctx)
	if err := c.WriteTables(ctx, core.Table{Name: core.SheetMonthlyProfits}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _ = c.LoadLedger(ctx)
	if reader.calls != 1 {
		t.Fatalf("report writes must keep the cache, got %d reads", reader.calls)
	}
	if _, ok := writer.Table(core.SheetMonthlyProfits); !ok {
		t.Fatalf("write not forwarded")
	}
}

func TestLedgerCacheDoesNotKeepErrors(t *testing.T) {
	reader := &countingReader{err: errors.New("quota exceeded")}
	c := NewLedger(reader, memory.New(core.Ledger{}), time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := c.LoadLedger(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
	}
	if reader.calls != 2 {
		t.Fatalf("errors must not be cached, got %d reads", reader.calls)
	}
}
