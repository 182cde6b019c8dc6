package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedStaff creates one employee and the named projects.
func seedStaff(t *testing.T, database *sql.DB, projects ...string) (*domain.Employee, []*domain.Project) {
	t.Helper()
	ctx := context.Background()

	emp := testutil.NewTestEmployee("Test", "Employee")
	require.NoError(t, NewSQLiteEmployeeRepo(database).Create(ctx, emp))

	projRepo := NewSQLiteProjectRepo(database)
	var created []*domain.Project
	for _, name := range projects {
		p := testutil.NewTestProject(name)
		require.NoError(t, projRepo.Create(ctx, p))
		created = append(created, p)
	}
	return emp, created
}

func TestAssignmentRepo_ListByEmployee(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	emp, projects := seedStaff(t, database, "Beta", "Alpha")
	repo := NewSQLiteAssignmentRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(emp.ID, projects[0].ID, testutil.Date("2025-01-01"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(emp.ID, projects[1].ID, testutil.Date("2025-01-01"),
		testutil.WithEndDate(testutil.Date("2025-03-31")))))

	list, err := repo.ListByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Same start date: ordered by project name.
	assert.Equal(t, "Alpha", list[0].ProjectName)
	require.NotNil(t, list[0].EndDate)
	assert.Equal(t, "2025-03-31", list[0].EndDate.Format(domain.DateLayout))
	assert.Equal(t, "Beta", list[1].ProjectName)
	assert.Nil(t, list[1].EndDate)
}

func TestAssignmentRepo_ListActive_Intersection(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	emp, projects := seedStaff(t, database, "Past", "Current", "Future", "Ongoing")
	repo := NewSQLiteAssignmentRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(emp.ID, projects[0].ID, testutil.Date("2024-01-01"),
		testutil.WithEndDate(testutil.Date("2025-01-31")))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(emp.ID, projects[1].ID, testutil.Date("2025-02-01"),
		testutil.WithEndDate(testutil.Date("2025-02-28")))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(emp.ID, projects[2].ID, testutil.Date("2025-03-01"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(emp.ID, projects[3].ID, testutil.Date("2024-06-01"))))

	active, err := repo.ListActive(ctx, emp.ID, testutil.Date("2025-02-10"), testutil.Date("2025-03-01"))
	require.NoError(t, err)

	var names []string
	for _, a := range active {
		names = append(names, a.ProjectName)
	}
	// Inclusive bounds: Future starts on the range end.
	assert.Equal(t, []string{"Ongoing", "Current", "Future"}, names)
}

func TestAssignmentRepo_EndBeforeStartRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	emp, projects := seedStaff(t, database, "Broken")
	repo := NewSQLiteAssignmentRepo(database)

	a := testutil.NewTestAssignment(emp.ID, projects[0].ID, testutil.Date("2025-02-01"),
		testutil.WithEndDate(testutil.Date("2025-01-01")))
	err := repo.Create(context.Background(), a)
	assert.ErrorIs(t, err, ErrCheckViolation)
}

func TestAssignmentRepo_UnknownEmployee(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, projects := seedStaff(t, database, "Orphan")
	repo := NewSQLiteAssignmentRepo(database)

	err := repo.Create(context.Background(),
		testutil.NewTestAssignment("ghost", projects[0].ID, testutil.Date("2025-01-01")))
	assert.ErrorIs(t, err, ErrForeignKey)
}
