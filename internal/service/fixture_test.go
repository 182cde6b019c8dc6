package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/timesheets/internal/db"
	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/engine"
	"github.com/alexanderramin/timesheets/internal/repository"
	"github.com/alexanderramin/timesheets/internal/testutil"
	"github.com/stretchr/testify/require"
)

// 2025-03-03 is a Monday.
var (
	monday   = testutil.Date("2025-03-03")
	tuesday  = testutil.Date("2025-03-04")
	friday   = testutil.Date("2025-03-07")
	saturday = testutil.Date("2025-03-08")
)

type fixture struct {
	db          *sql.DB
	uow         db.UnitOfWork
	employees   *repository.SQLiteEmployeeRepo
	projects    *repository.SQLiteProjectRepo
	assignments *repository.SQLiteAssignmentRepo
	timesheets  *repository.SQLiteTimesheetRepo

	employee *domain.Employee
	apollo   *domain.Project
	gemini   *domain.Project
	mercury  *domain.Project
	// unassigned exists but the employee has no assignment to it.
	unassigned *domain.Project
}

// newFixture seeds one employee with ongoing assignments to Apollo, Gemini
// and Mercury from 2025-01-01.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, testutil.NewTestDB(t))
}

// newFileFixture seeds the same data into a file-backed database whose pool
// holds several connections, for tests that race writers.
func newFileFixture(t *testing.T) *fixture {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "timesheets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return newFixtureOn(t, database)
}

func newFixtureOn(t *testing.T, database *sql.DB) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		employees:   repository.NewSQLiteEmployeeRepo(database),
		projects:    repository.NewSQLiteProjectRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
		timesheets:  repository.NewSQLiteTimesheetRepo(database),
	}

	f.employee = testutil.NewTestEmployee("Yash", "Mehta")
	require.NoError(t, f.employees.Create(ctx, f.employee))

	f.apollo = testutil.NewTestProject("Apollo")
	f.gemini = testutil.NewTestProject("Gemini")
	f.mercury = testutil.NewTestProject("Mercury")
	f.unassigned = testutil.NewTestProject("Skylab")
	for _, p := range []*domain.Project{f.apollo, f.gemini, f.mercury, f.unassigned} {
		require.NoError(t, f.projects.Create(ctx, p))
	}
	for _, p := range []*domain.Project{f.apollo, f.gemini, f.mercury} {
		require.NoError(t, f.assignments.Create(ctx,
			testutil.NewTestAssignment(f.employee.ID, p.ID, testutil.Date("2025-01-01"))))
	}
	return f
}

func (f *fixture) timesheetService(observers ...UseCaseObserver) TimesheetService {
	return f.timesheetServiceWith(f.timesheets, f.uow, observers...)
}

func (f *fixture) timesheetServiceWith(timesheets repository.TimesheetRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TimesheetService {
	svc, err := NewTimesheetService(f.employees, f.projects, f.assignments, timesheets, uow, engine.DefaultRules(), observers...)
	if err != nil {
		panic(err)
	}
	return svc
}

// recordingObserver keeps every event for inspection.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func week() (time.Time, time.Time) { return monday, friday }
