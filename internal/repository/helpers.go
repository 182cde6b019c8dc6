package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheets/internal/domain"
)

// dateLayout is the storage format for calendar days.
const dateLayout = domain.DateLayout

// parseDate parses a stored calendar day into midnight UTC.
func parseDate(s, column string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// parseNullableDate parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableDateToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableDateToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// timestampOrNow formats t as RFC3339, substituting the current UTC time for a zero value.
func timestampOrNow(t time.Time) string {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp parses an RFC3339 column; an empty value yields the zero time.
func parseTimestamp(s, column string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}
