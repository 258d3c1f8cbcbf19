package backend

import (
	"context"
	"time"

	ports "clubfin/internal/sheets"
)

// Backend bundles the storage ports one command needs.
type Backend struct {
	Ledger   ports.LedgerReader
	Reports  ports.TableWriter // receives the finance report sheets
	Roster   ports.RosterReader
	RosterTo ports.TableWriter // receives Members_Updated and Attendance_Payments
	Accounts ports.AccountStore
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Ledger   BackendType
	Accounts BackendType

	// Excel specific
	FinanceFile  string
	AccountsFile string
	RosterFile   string

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific; ledger reads are cached for SheetsCacheTTL
	// when it is positive.
	GoogleSpreadsheetID string
	SheetsCacheTTL      time.Duration

	// Memory backend specific
	DataDirectory string
}

// BackendType represents the type of backend
type BackendType string

const (
	ExcelBackend  BackendType = "excel"
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// ValidForLedger reports whether bt can hold the ledger.
func (bt BackendType) ValidForLedger() bool {
	switch bt {
	case ExcelBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// ValidForAccounts reports whether bt can hold the account store.
func (bt BackendType) ValidForAccounts() bool {
	switch bt {
	case ExcelBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
