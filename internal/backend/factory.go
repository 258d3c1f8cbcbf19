package backend

import (
	"context"
	"errors"
	"fmt"

	"clubfin/internal/cache"
	"clubfin/internal/config"
	"clubfin/internal/core"
	applog "clubfin/internal/log"
	"clubfin/internal/sheets/excel"
	gsheet "clubfin/internal/sheets/google"
	"clubfin/internal/sheets/memory"
	"clubfin/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{logger: logger.WithComponent(applog.ComponentBackend)}
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	cfg := Config{
		Ledger:              BackendType(appConfig.LedgerBackend),
		Accounts:            BackendType(appConfig.AccountsBackend),
		FinanceFile:         appConfig.FinanceFile,
		AccountsFile:        appConfig.AccountsFile,
		RosterFile:          appConfig.RosterFile,
		SQLiteDBPath:        appConfig.SQLiteDBPath,
		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		SheetsCacheTTL:      appConfig.SheetsCacheTTL,
		DataDirectory:       appConfig.SeedDir,
	}
	return cfg, cfg.Validate()
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Ledger.ValidForLedger() {
		return fmt.Errorf("invalid ledger backend type: %s", c.Ledger)
	}
	if !c.Accounts.ValidForAccounts() {
		return fmt.Errorf("invalid accounts backend type: %s", c.Accounts)
	}
	if c.Ledger == SheetsBackend && c.GoogleSpreadsheetID == "" {
		return errors.New("Google Spreadsheet ID is required for sheets backend")
	}
	if c.Accounts == SQLiteBackend && c.SQLiteDBPath == "" {
		return errors.New("SQLite database path is required for sqlite backend")
	}
	return nil
}

// CreateBackend wires the ledger, roster and account stores. The roster
// lives in its own workbook unless the ledger is in memory, in which case the
// memory store serves it too.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		b        Backend
		cleanups []CleanupFunc
		mem      *memory.Store
	)

	switch config.Ledger {
	case ExcelBackend:
		wb := excel.NewWorkbook(config.FinanceFile)
		b.Ledger, b.Reports = wb, wb
		f.logger.InfoContext(ctx, "Initialized Excel ledger backend", applog.FieldPath, config.FinanceFile)
	case SheetsBackend:
		cli, err := gsheet.NewFromEnv(ctx, config.GoogleSpreadsheetID, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		if config.SheetsCacheTTL > 0 {
			cached := cache.NewLedger(cli, cli, config.SheetsCacheTTL)
			b.Ledger, b.Reports = cached, cached
		} else {
			b.Ledger, b.Reports = cli, cli
		}
		f.logger.InfoContext(ctx, "Initialized Google Sheets ledger backend", "cache_ttl", config.SheetsCacheTTL)
	case MemoryBackend:
		dataDir := config.DataDirectory
		if dataDir == "" {
			dataDir = "data"
		}
		var err error
		mem, err = memory.NewFromFiles(dataDir, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to seed memory ledger: %w", err)
		}
		b.Ledger, b.Reports = mem, mem
		f.logger.InfoContext(ctx, "Initialized memory ledger backend", "data_directory", dataDir)
	}

	if mem != nil {
		b.Roster, b.RosterTo = mem, mem
	} else {
		roster := excel.NewWorkbook(config.RosterFile)
		b.Roster, b.RosterTo = roster, roster
	}

	switch config.Accounts {
	case ExcelBackend:
		b.Accounts = excel.NewAccountBook(config.AccountsFile)
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		b.Accounts = repo
		cleanups = append(cleanups, repo.Close)
		f.logger.InfoContext(ctx, "Initialized SQLite account store", "db_path", config.SQLiteDBPath)
	case MemoryBackend:
		if mem == nil {
			mem = memory.New(core.Ledger{})
		}
		b.Accounts = mem
	}

	return &BackendResult{
		Backend: b,
		Cleanup: func() error {
			var errs []error
			for _, c := range cleanups {
				errs = append(errs, c())
			}
			return errors.Join(errs...)
		},
	}, nil
}
