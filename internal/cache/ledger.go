// Package cache keeps recent ledger reads so repeated menu actions do not
// refetch a remote spreadsheet.
package cache

import (
	"context"
	"sync"
	"time"

	"clubfin/internal/core"
	ports "clubfin/internal/sheets"
)

// Ledger wraps a LedgerReader and TableWriter pair. LoadLedger results are
// reused for ttl. Writes go straight through: the program only writes report
// sheets, so they never change what LoadLedger returns.
type Ledger struct {
	reader ports.LedgerReader
	writer ports.TableWriter
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	cached    *core.Ledger
	expiresAt time.Time
}

var (
	_ ports.LedgerReader = (*Ledger)(nil)
	_ ports.TableWriter  = (*Ledger)(nil)
)

func NewLedger(reader ports.LedgerReader, writer ports.TableWriter, ttl time.Duration) *Ledger {
	return &Ledger{reader: reader, writer: writer, ttl: ttl, now: time.Now}
}

func (c *Ledger) LoadLedger(ctx context.Context) (core.Ledger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Before(c.expiresAt) {
		return *c.cached, nil
	}
	ledger, err := c.reader.LoadLedger(ctx)
	if err != nil {
		return core.Ledger{}, err
	}
	c.cached = &ledger
	c.expiresAt = c.now().Add(c.ttl)
	return ledger, nil
}

func (c *Ledger) WriteTables(ctx context.Context, tables ...core.Table) error {
	return c.writer.WriteTables(ctx, tables...)
}
