package repo

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB and *sql.Tx the repositories need. Mutating
// methods take a Querier so the service layer can run a record mutation and
// its audit write inside one transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
