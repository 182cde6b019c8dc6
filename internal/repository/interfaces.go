package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheets/internal/domain"
)

// ProjectHours is the total logged on one project over a period.
type ProjectHours struct {
	ProjectID   string
	ProjectName string
	Hours       float64
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByName(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

// AssignmentRepo is read-only from the rules engine's point of view; Create
// serves the reference-data import.
type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Assignment, error)
	// ListActive returns assignments whose interval intersects [start, end],
	// ordered by start date then project name.
	ListActive(ctx context.Context, employeeID string, start, end time.Time) ([]*domain.Assignment, error)
}

type TimesheetRepo interface {
	// Create inserts one entry. A second entry for the same employee,
	// project and date fails with ErrDuplicate.
	Create(ctx context.Context, e *domain.TimesheetEntry) error
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]*domain.TimesheetEntry, error)
	SumByProject(ctx context.Context, employeeID string, start, end time.Time) ([]ProjectHours, error)
	ListDates(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error)
}
