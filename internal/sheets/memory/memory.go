package memory

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"clubfin/internal/core"
	applog "clubfin/internal/log"
	ports "clubfin/internal/sheets"
)

// Store keeps every sheet in memory. It backs tests and the "memory" backend.
type Store struct {
	mu       sync.Mutex
	ledger   core.Ledger
	roster   core.Roster
	accounts []core.Account
	tables   map[string]core.Table
}

var (
	_ ports.LedgerReader = (*Store)(nil)
	_ ports.TableWriter  = (*Store)(nil)
	_ ports.RosterReader = (*Store)(nil)
	_ ports.AccountStore = (*Store)(nil)
)

func New(ledger core.Ledger) *Store {
	return &Store{ledger: ledger, tables: make(map[string]core.Table)}
}

// NewFromFiles seeds the ledger from seed_revenues.txt and seed_expenses.txt
// in base. Each line is "Month|Category|Amount"; blank lines and lines
// starting with # are skipped. Unreadable lines become ledger warnings. A
// missing seed file leaves that side of the ledger empty and is logged; any
// other read failure is a *core.DataSourceError.
func NewFromFiles(base string, logger *applog.Logger) (*Store, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	var ledger core.Ledger
	for _, seed := range []struct {
		sheet string
		file  string
		dst   *[]core.Transaction
	}{
		{core.SheetRevenues, "seed_revenues.txt", &ledger.Revenues},
		{core.SheetExpenses, "seed_expenses.txt", &ledger.Expenses},
	} {
		path := filepath.Join(base, seed.file)
		lines, err := readLines(path)
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Seed file missing, starting with no rows",
				applog.FieldSheet, seed.sheet, applog.FieldPath, path)
			continue
		}
		if err != nil {
			return nil, &core.DataSourceError{Source: path, Sheet: seed.sheet, Err: err}
		}
		rows := [][]string{{core.ColumnMonth, core.ColumnCategory, core.ColumnAmount}}
		for _, line := range lines {
			rows = append(rows, strings.Split(line, "|"))
		}
		txs, warnings, err := ports.ParseLedgerSheet(seed.sheet, rows)
		if err != nil {
			return nil, &core.DataSourceError{Source: path, Sheet: seed.sheet, Err: err}
		}
		*seed.dst = txs
		ledger.Warnings = append(ledger.Warnings, warnings...)
	}
	return New(ledger), nil
}

func (s *Store) LoadLedger(_ context.Context) (core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Ledger{
		Revenues: append([]core.Transaction(nil), s.ledger.Revenues...),
		Expenses: append([]core.Transaction(nil), s.ledger.Expenses...),
		Warnings: append([]core.RowWarning(nil), s.ledger.Warnings...),
	}, nil
}

// SetRoster replaces the roster returned by LoadRoster.
func (s *Store) SetRoster(r core.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = r
}

func (s *Store) LoadRoster(_ context.Context) (core.Roster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.roster
	r.Members = append([]core.Member(nil), s.roster.Members...)
	r.Attendance = append([]core.AttendanceRecord(nil), s.roster.Attendance...)
	return r, nil
}

func (s *Store) WriteTables(_ context.Context, tables ...core.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tables {
		s.tables[t.Name] = t
	}
	return nil
}

// Table returns the last table written under name.
func (s *Store) Table(name string) (core.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	return t, ok
}

func (s *Store) ListAccounts(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...), nil
}

func (s *Store) AddAccount(_ context.Context, a core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
	return nil
}

func (s *Store) RemoveAccount(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.accounts {
		if a.Username == username {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
