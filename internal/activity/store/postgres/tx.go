package postgres

import (
	"context"
	"database/sql"
	"time"

	dErrors "steward/pkg/domain-errors"
	"steward/pkg/platform/memtx"
	txcontext "steward/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// UnitOfWork runs a mutation and its activity appends in one database
// transaction. The transaction travels in the context, so any store that
// consults txcontext joins it. A memtx commit log travels alongside it so
// in-memory stores defer their writes until the database commit succeeds.
type UnitOfWork struct {
	db      *sql.DB
	timeout time.Duration
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := u.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	fnCtx, memTx := memtx.With(txcontext.WithTx(ctx, tx))
	if err := fn(fnCtx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	memTx.Commit()
	return nil
}
