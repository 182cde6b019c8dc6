package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/timesheets/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth write it sees. A submission commits
// each accepted entry in its own transaction, so writes are counted across
// every transaction the UoW opens: FailOn 2 fails the second stored entry
// of a submission, or the second row of a single reference import.
//
// Reads pass through uncounted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	writes atomic.Int32
}

// Writes reports how many ExecContext calls were attempted so far.
func (u *FailOnNthExecUoW) Writes() int { return int(u.writes.Load()) }

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(ctx, &countingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type countingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.uow.writes.Add(1) == c.uow.FailOn {
		return nil, c.uow.Err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
