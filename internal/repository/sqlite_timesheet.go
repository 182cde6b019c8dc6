package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheets/internal/db"
	"github.com/alexanderramin/timesheets/internal/domain"
)

// SQLiteTimesheetRepo implements TimesheetRepo using a SQLite database.
type SQLiteTimesheetRepo struct {
	db db.DBTX
}

func NewSQLiteTimesheetRepo(conn db.DBTX) *SQLiteTimesheetRepo {
	return &SQLiteTimesheetRepo{db: conn}
}

func (r *SQLiteTimesheetRepo) Create(ctx context.Context, e *domain.TimesheetEntry) error {
	query := `INSERT INTO timesheets (id, employee_id, project_id, date_worked, hours_worked, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	createdAt := timestampOrNow(e.CreatedAt)
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.EmployeeID,
		e.ProjectID,
		e.DateWorked.Format(dateLayout),
		e.Hours,
		e.Note,
		createdAt,
	)
	if err != nil {
		if kind := classifyConstraint(err); kind != nil {
			return fmt.Errorf("inserting timesheet entry %s/%s on %s: %w",
				e.EmployeeID, e.ProjectID, e.DateWorked.Format(dateLayout), kind)
		}
		return fmt.Errorf("inserting timesheet entry: %w", err)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]*domain.TimesheetEntry, error) {
	query := `SELECT id, employee_id, project_id, date_worked, hours_worked, note, created_at
		FROM timesheets
		WHERE employee_id = ? AND date_worked BETWEEN ? AND ?
		ORDER BY date_worked, project_id`
	rows, err := r.db.QueryContext(ctx, query, employeeID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing timesheet entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimesheetEntry
	for rows.Next() {
		var e domain.TimesheetEntry
		var dateStr, createdStr string
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.ProjectID, &dateStr, &e.Hours, &e.Note, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning timesheet row: %w", err)
		}
		if e.DateWorked, err = parseDate(dateStr, "date_worked"); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTimestamp(createdStr, "created_at"); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheet entries: %w", err)
	}
	return entries, nil
}

// SumByProject totals hours per project over [start, end], ordered by project name.
// Sums are rounded to hundredths in SQL so float drift never reaches callers.
func (r *SQLiteTimesheetRepo) SumByProject(ctx context.Context, employeeID string, start, end time.Time) ([]ProjectHours, error) {
	query := `SELECT t.project_id, p.name, ROUND(SUM(t.hours_worked), 2)
		FROM timesheets t
		JOIN projects p ON t.project_id = p.id
		WHERE t.employee_id = ? AND t.date_worked BETWEEN ? AND ?
		GROUP BY t.project_id, p.name
		ORDER BY p.name`
	rows, err := r.db.QueryContext(ctx, query, employeeID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("summing hours by project: %w", err)
	}
	defer rows.Close()

	var totals []ProjectHours
	for rows.Next() {
		var ph ProjectHours
		if err := rows.Scan(&ph.ProjectID, &ph.ProjectName, &ph.Hours); err != nil {
			return nil, fmt.Errorf("scanning project total: %w", err)
		}
		totals = append(totals, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project totals: %w", err)
	}
	return totals, nil
}

// ListDates returns the distinct days with at least one entry, ascending.
func (r *SQLiteTimesheetRepo) ListDates(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error) {
	query := `SELECT DISTINCT date_worked
		FROM timesheets
		WHERE employee_id = ? AND date_worked BETWEEN ? AND ?
		ORDER BY date_worked`
	rows, err := r.db.QueryContext(ctx, query, employeeID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing worked dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning worked date: %w", err)
		}
		d, err := parseDate(s, "date_worked")
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating worked dates: %w", err)
	}
	return dates, nil
}
