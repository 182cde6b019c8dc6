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

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, timestampOrNow(time.Time{}))
	if err != nil {
		if kind := classifyConstraint(err); kind != nil {
			return fmt.Errorf("inserting project %s (%s): %w", p.ID, p.Name, kind)
		}
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM projects WHERE id = ?`, id)
	return r.scanProject(row, id)
}

func (r *SQLiteProjectRepo) GetByName(ctx context.Context, name string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM projects WHERE name = ? COLLATE NOCASE`, name)
	return r.scanProject(row, name)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row, ref string) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", ref, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return &p, nil
}
