package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheets/internal/db"
	"github.com/alexanderramin/timesheets/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

const assignmentColumns = `a.id, a.employee_id, a.project_id, p.name, a.start_date, a.end_date`

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (id, employee_id, project_id, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.EmployeeID,
		a.ProjectID,
		a.StartDate.Format(dateLayout),
		nullableDateToString(a.EndDate),
		timestampOrNow(time.Time{}),
	)
	if err != nil {
		if kind := classifyConstraint(err); kind != nil {
			return fmt.Errorf("inserting assignment %s/%s from %s: %w",
				a.EmployeeID, a.ProjectID, a.StartDate.Format(dateLayout), kind)
		}
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM assignments a
		JOIN projects p ON a.project_id = p.id
		WHERE a.employee_id = ?
		ORDER BY a.start_date, p.name`
	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by employee: %w", err)
	}
	defer rows.Close()
	return r.scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListActive(ctx context.Context, employeeID string, start, end time.Time) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM assignments a
		JOIN projects p ON a.project_id = p.id
		WHERE a.employee_id = ?
		  AND a.start_date <= ?
		  AND (a.end_date IS NULL OR a.end_date >= ?)
		ORDER BY a.start_date, p.name`
	rows, err := r.db.QueryContext(ctx, query, employeeID, end.Format(dateLayout), start.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing active assignments: %w", err)
	}
	defer rows.Close()
	return r.scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) scanAssignments(rows *sql.Rows) ([]*domain.Assignment, error) {
	var assignments []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var startStr string
		var endStr sql.NullString
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.ProjectID, &a.ProjectName, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		var err error
		if a.StartDate, err = parseDate(startStr, "start_date"); err != nil {
			return nil, err
		}
		a.EndDate = parseNullableDate(endStr)
		assignments = append(assignments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}
