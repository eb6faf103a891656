// Package sqlite contains SQLite implementations of the repository
// interfaces. Every repository is parameterized over dbtx so the same
// queries run against the shared connection or inside an open transaction.
package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
