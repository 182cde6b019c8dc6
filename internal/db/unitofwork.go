package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// UnitOfWork scopes a group of timesheet writes to one transaction. The
// callback receives a DBTX backed by a *sql.Tx; callers build tx-scoped
// repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// DefaultBusyRetries is how many extra attempts WithinTx makes when SQLite
// still reports the database as locked after busy_timeout has expired.
const DefaultBusyRetries = 3

// SQLiteUnitOfWork implements UnitOfWork with database/sql transactions.
type SQLiteUnitOfWork struct {
	db      *sql.DB
	retries int
	backoff time.Duration
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db, retries: DefaultBusyRetries, backoff: 20 * time.Millisecond}
}

// WithinTx runs fn in a transaction, committing on success and rolling back
// on error or panic. A transaction that fails only because another writer
// holds the lock is rolled back and run again from the start, so fn must
// not keep state across attempts.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = u.runOnce(ctx, fn)
		if err == nil || !IsBusy(err) || attempt >= u.retries {
			return err
		}
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(u.backoff * time.Duration(attempt+1)):
		}
	}
}

func (u *SQLiteUnitOfWork) runOnce(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// IsBusy reports whether err is SQLite refusing a lock held by another
// connection.
func IsBusy(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}
