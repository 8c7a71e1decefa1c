// Package dbx holds the database/sql plumbing the Postgres user store is
// built on: the DBTX handle that lets one repository type run against either
// the pool or an open transaction, and WithTx, the transaction boundary.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what users.PostgresRepository needs from a connection. *sql.DB and
// *sql.Tx both satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx is the transaction boundary behind the repository manager's InTx.
// Registration runs its duplicate lookup, password hashing and insert inside
// it, so a failure at any step leaves no user row behind.
//
// fn gets the open *sql.Tx as a DBTX. A nil return commits; an error or a
// panic rolls back, and the panic is re-raised after the rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tx.Rollback()
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	committed = true
	return tx.Commit()
}
