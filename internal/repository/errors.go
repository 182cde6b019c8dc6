package repository

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a UNIQUE or PRIMARY KEY constraint.
	ErrDuplicate = errors.New("duplicate")

	// ErrCheckViolation is returned when an insert violates a CHECK constraint.
	ErrCheckViolation = errors.New("check constraint violated")

	// ErrForeignKey is returned when an insert references a missing parent row.
	ErrForeignKey = errors.New("foreign key violated")
)

// classifyConstraint maps SQLite constraint failures to the sentinels above.
// It returns nil when err is not a constraint failure.
func classifyConstraint(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ErrDuplicate
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return ErrCheckViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ErrForeignKey
		}
	}

	// Primary result codes only carry SQLITE_CONSTRAINT; fall back to the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicate
	case strings.Contains(msg, "CHECK constraint failed"):
		return ErrCheckViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrForeignKey
	}
	return nil
}
