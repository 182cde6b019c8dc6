package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheets/internal/db"
	"github.com/alexanderramin/timesheets/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

func NewSQLiteEmployeeRepo(conn db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: conn}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (id, first_name, last_name, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.FirstName, e.LastName, timestampOrNow(time.Time{}))
	if err != nil {
		if kind := classifyConstraint(err); kind != nil {
			return fmt.Errorf("inserting employee %s: %w", e.ID, kind)
		}
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT id, first_name, last_name FROM employees WHERE id = ?`
	var e domain.Employee
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.FirstName, &e.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	return &e, nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT id, first_name, last_name FROM employees ORDER BY last_name, first_name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName); err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		employees = append(employees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}
