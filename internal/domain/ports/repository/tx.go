package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle threaded through repository calls.
// Repositories accept nil for the non-transactional path; the concrete
// type is infra-defined (pgx.Tx for Postgres).
type Tx interface{}

// TransactionManager executes a function inside one database transaction,
// passing the handle via the Tx argument. Both redemption writes (mark the
// code used, extend the window) and both receipt writes (insert receipt,
// update invoice terms) run through this so neither pair can half-apply.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
