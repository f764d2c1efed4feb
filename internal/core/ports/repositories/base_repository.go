package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager provides atomic multi-statement execution. Every multi-row
// mutation in the accounting core runs through WithinTx so that no partial state is
// ever visible and a failure anywhere rolls back every write in the block.
type TransactionManager interface {
	// WithinTx begins a transaction, runs fn with it, and commits on nil error or
	// rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
