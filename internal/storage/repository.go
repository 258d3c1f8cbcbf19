package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"clubfin/internal/core"
	ports "clubfin/internal/sheets"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the SQLite account store.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ ports.AccountStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.queries.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]core.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.Account{
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			Email:       row.Email,
			Username:    row.Username,
			Password:    row.Password,
			Permissions: core.Permission(row.Permissions),
		})
	}
	return out, nil
}

func (r *SQLiteRepository) AddAccount(ctx context.Context, a core.Account) error {
	_, err := r.queries.CreateAccount(ctx, CreateAccountParams{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		Username:    a.Username,
		Password:    a.Password,
		Permissions: string(a.Permissions),
	})
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveAccount(ctx context.Context, username string) (bool, error) {
	n, err := r.queries.DeleteAccountByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return n > 0, nil
}
