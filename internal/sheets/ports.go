package sheets

import (
	"context"

	"clubfin/internal/core"
)

// Ports for outbound adapters.
type (
	// LedgerReader loads the raw Revenues and Expenses sheets. Rows that
	// cannot be read are excluded and listed in Ledger.Warnings; a missing
	// or malformed sheet fails with a *core.DataSourceError.
	LedgerReader interface {
		LoadLedger(ctx context.Context) (core.Ledger, error)
	}

	// TableWriter replaces the named sheets with the given tables, leaving
	// every other sheet untouched.
	TableWriter interface {
		WriteTables(ctx context.Context, tables ...core.Table) error
	}

	RosterReader interface {
		LoadRoster(ctx context.Context) (core.Roster, error)
	}

	AccountStore interface {
		ListAccounts(ctx context.Context) ([]core.Account, error)
		AddAccount(ctx context.Context, a core.Account) error
		// RemoveAccount returns false when no account has that username.
		RemoveAccount(ctx context.Context, username string) (bool, error)
	}
)
