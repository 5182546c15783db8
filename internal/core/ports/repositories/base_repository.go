package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager scopes multi-statement writes, such as a claim status change and
// its history row, to one database transaction.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is a no-op on a transaction that was already committed.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
