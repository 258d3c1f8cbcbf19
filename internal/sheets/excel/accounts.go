package excel

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"clubfin/internal/core"
	ports "clubfin/internal/sheets"
)

const defaultAccountsSheet = "Sheet1"

// AccountBook keeps the account store in its own workbook, in the first sheet
// whose header carries Username and Password (the first sheet when none does).
// Every change rewrites that sheet in place.
type AccountBook struct {
	path string
}

var _ ports.AccountStore = (*AccountBook)(nil)

func NewAccountBook(path string) *AccountBook {
	return &AccountBook{path: path}
}

// ListAccounts returns no accounts when the workbook does not exist yet.
func (b *AccountBook) ListAccounts(_ context.Context) ([]core.Account, error) {
	if _, err := os.Stat(b.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	f, err := excelize.OpenFile(b.path)
	if err != nil {
		return nil, &core.DataSourceError{Source: b.path, Err: err}
	}
	defer f.Close()

	sheet := accountsSheet(f)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &core.DataSourceError{Source: b.path, Sheet: sheet, Err: err}
	}
	accounts, err := ports.ParseAccountsSheet(rows)
	if err != nil {
		return nil, &core.DataSourceError{Source: b.path, Sheet: sheet, Err: err}
	}
	return accounts, nil
}

func (b *AccountBook) AddAccount(ctx context.Context, a core.Account) error {
	accounts, err := b.ListAccounts(ctx)
	if err != nil {
		return err
	}
	return b.save(append(accounts, a))
}

func (b *AccountBook) RemoveAccount(ctx context.Context, username string) (bool, error) {
	accounts, err := b.ListAccounts(ctx)
	if err != nil {
		return false, err
	}
	kept := accounts[:0]
	for _, a := range accounts {
		if a.Username != username {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(accounts) {
		return false, nil
	}
	return true, b.save(kept)
}

func (b *AccountBook) save(accounts []core.Account) error {
	f, err := openOrCreate(b.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeTable(f, core.AccountsTable(accountsSheet(f), accounts)); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	if err := f.SaveAs(b.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", b.path, err)
	}
	return nil
}

func accountsSheet(f *excelize.File) string {
	list := f.GetSheetList()
	if len(list) == 0 {
		return defaultAccountsSheet
	}
	for _, name := range list {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil || len(rows) == 0 {
			continue
		}
		if ports.IndexOf(rows[0], "Username") >= 0 && ports.IndexOf(rows[0], "Password") >= 0 {
			return name
		}
	}
	return list[0]
}
