package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/repository"
	"github.com/alexanderramin/timesheets/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveAssignments(t *testing.T) {
	f := newFixture(t)
	svc := NewAssignmentService(f.employees, f.assignments)

	active, err := svc.ActiveAssignments(context.Background(),
		app.PeriodRequest{EmployeeID: f.employee.ID, Start: monday, End: friday})
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "Apollo", active[0].ProjectName)
	for _, a := range active {
		assert.True(t, a.Intersects(monday, friday))
	}
}

func TestActiveAssignments_NoneIntersect(t *testing.T) {
	f := newFixture(t)
	svc := NewAssignmentService(f.employees, f.assignments)

	active, err := svc.ActiveAssignments(context.Background(), app.PeriodRequest{
		EmployeeID: f.employee.ID,
		Start:      testutil.Date("2024-12-01"),
		End:        testutil.Date("2024-12-31"),
	})
	require.NoError(t, err)
	assert.NotNil(t, active)
	assert.Empty(t, active)
}

func TestActiveAssignments_UnknownEmployee(t *testing.T) {
	f := newFixture(t)
	svc := NewAssignmentService(f.employees, f.assignments)

	_, err := svc.ActiveAssignments(context.Background(),
		app.PeriodRequest{EmployeeID: "ghost", Start: monday, End: friday})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.ListByEmployee(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
