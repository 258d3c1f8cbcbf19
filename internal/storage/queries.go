package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx runs the queries inside tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type AccountRow struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Username    string
	Password    string
	Permissions string
}

const listAccounts = `
SELECT id, first_name, last_name, email, username, password, permissions
FROM accounts
ORDER BY id
`

func (q *Queries) ListAccounts(ctx context.Context) ([]AccountRow, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AccountRow
	for rows.Next() {
		var i AccountRow
		if err := rows.Scan(&i.ID, &i.FirstName, &i.LastName, &i.Email, &i.Username, &i.Password, &i.Permissions); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createAccount = `
INSERT INTO accounts (first_name, last_name, email, username, password, permissions)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateAccountParams struct {
	FirstName   string
	LastName    string
	Email       string
	Username    string
	Password    string
	Permissions string
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createAccount,
		arg.FirstName, arg.LastName, arg.Email, arg.Username, arg.Password, arg.Permissions)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const deleteAccountByUsername = `DELETE FROM accounts WHERE username = ?`

func (q *Queries) DeleteAccountByUsername(ctx context.Context, username string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteAccountByUsername, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
