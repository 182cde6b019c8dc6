package service

import (
	"context"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/importer"
)

type CalendarService interface {
	WorkdayRange(ctx context.Context, req app.RangeRequest) (calendar.WorkdayRange, error)
}

type AssignmentService interface {
	ActiveAssignments(ctx context.Context, req app.PeriodRequest) ([]*domain.Assignment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Assignment, error)
}

type TimesheetService interface {
	SummarizePeriod(ctx context.Context, req app.PeriodRequest) (*app.PeriodSummary, error)
	FindMissingEntries(ctx context.Context, employeeID string, rng calendar.WorkdayRange) (*app.GapReport, error)
	SubmitEntries(ctx context.Context, reqs []app.EntryRequest) ([]app.EntryResult, error)
	ListEntries(ctx context.Context, req app.PeriodRequest) ([]*domain.TimesheetEntry, error)
}

// DirectoryService exposes the reference data: employees and projects.
type DirectoryService interface {
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	// ResolveProject looks a project up by ID, then by name.
	ResolveProject(ctx context.Context, ref string) (*domain.Project, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ReferenceSchema) (*app.ImportResult, error)
}
