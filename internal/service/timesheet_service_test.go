package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/engine"
	"github.com/alexanderramin/timesheets/internal/repository"
	"github.com/alexanderramin/timesheets/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) req(p *domain.Project, day time.Time, hours float64) app.EntryRequest {
	return app.EntryRequest{EmployeeID: f.employee.ID, ProjectID: p.ID, Date: day, Hours: hours}
}

func statuses(results []app.EntryResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		if r.Inserted() {
			out[i] = string(r.Status)
		} else {
			out[i] = string(r.Reason)
		}
	}
	return out
}

func TestSubmitEntries_RoundTripIntoSummary(t *testing.T) {
	f := newFixture(t)
	svc := f.timesheetService()
	ctx := context.Background()

	results, err := svc.SubmitEntries(ctx, []app.EntryRequest{
		f.req(f.apollo, monday, 3.8),
		f.req(f.gemini, monday, 3.8),
		f.req(f.apollo, tuesday, 1.9),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"inserted", "inserted", "inserted"}, statuses(results))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.NotEmpty(t, r.EntryID)
	}

	start, end := week()
	summary, err := svc.SummarizePeriod(ctx, app.PeriodRequest{EmployeeID: f.employee.ID, Start: start, End: end})
	require.NoError(t, err)
	assert.Equal(t, 5.7, summary.ByProject[f.apollo.ID])
	assert.Equal(t, 3.8, summary.ByProject[f.gemini.ID])
	assert.Equal(t, 9.5, summary.TotalHours)
	require.Len(t, summary.Projects, 2)
	assert.Equal(t, "Apollo", summary.Projects[0].ProjectName)
	assert.Equal(t, "Gemini", summary.Projects[1].ProjectName)
	require.Len(t, summary.Dates, 2)
	assert.True(t, summary.Dates[0].Equal(monday))
	assert.True(t, summary.Dates[1].Equal(tuesday))
}

func TestSubmitEntries_CapAccumulatesWithinBatch(t *testing.T) {
	f := newFixture(t)
	svc := f.timesheetService()

	results, err := svc.SubmitEntries(context.Background(), []app.EntryRequest{
		f.req(f.apollo, monday, 3.8),
		f.req(f.gemini, monday, 3.8),
		f.req(f.mercury, monday, 1.9),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"inserted", "inserted", "DAILY_CAP_EXCEEDED"}, statuses(results))
	assert.Contains(t, results[2].Detail, "DAILY_CAP_EXCEEDED")
}

func TestSubmitEntries_CapCountsStoredEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.timesheets.Create(ctx, testutil.NewTestEntry(f.employee.ID, f.apollo.ID, monday, 5.7)))

	results, err := f.timesheetService().SubmitEntries(ctx, []app.EntryRequest{
		f.req(f.gemini, monday, 3.8),
		f.req(f.gemini, tuesday, 3.8),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DAILY_CAP_EXCEEDED", "inserted"}, statuses(results))
}

func TestSubmitEntries_Increments(t *testing.T) {
	f := newFixture(t)
	svc := f.timesheetService()

	days := []time.Time{monday, tuesday, testutil.Date("2025-03-05"), testutil.Date("2025-03-06"), friday, testutil.Date("2025-03-10")}
	hours := []float64{1.9, 3.8, 5.7, 7.6, 2.0, 5.0}
	var reqs []app.EntryRequest
	for i := range days {
		reqs = append(reqs, f.req(f.apollo, days[i], hours[i]))
	}

	results, err := svc.SubmitEntries(context.Background(), reqs)
	require.NoError(t, err)
	assert.Equal(t, []string{"inserted", "inserted", "inserted", "inserted", "INVALID_INCREMENT", "INVALID_INCREMENT"}, statuses(results))
}

func TestSubmitEntries_RuleRejections(t *testing.T) {
	f := newFixture(t)
	svc := f.timesheetService()

	results, err := svc.SubmitEntries(context.Background(), []app.EntryRequest{
		f.req(f.apollo, saturday, 1.9),
		f.req(f.unassigned, monday, 1.9),
		f.req(f.apollo, monday, 1.9),
		f.req(f.apollo, monday, 1.9),
		f.req(f.apollo, tuesday, 0),
		f.req(f.apollo, friday, 24.7),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"NON_WORKDAY",
		"NO_ACTIVE_ASSIGNMENT",
		"inserted",
		"DUPLICATE_ENTRY",
		"OUT_OF_BOUNDS",
		"OUT_OF_BOUNDS",
	}, statuses(results))

	stored, err := f.timesheets.ListByEmployee(context.Background(), f.employee.ID, monday, saturday)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSubmitEntries_AssignmentWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ended := testutil.NewTestProject("Vostok")
	require.NoError(t, f.projects.Create(ctx, ended))
	require.NoError(t, f.assignments.Create(ctx, testutil.NewTestAssignment(f.employee.ID, ended.ID,
		testutil.Date("2025-02-03"), testutil.WithEndDate(monday))))

	results, err := f.timesheetService().SubmitEntries(ctx, []app.EntryRequest{
		f.req(ended, monday, 1.9),
		f.req(ended, tuesday, 1.9),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"inserted", "NO_ACTIVE_ASSIGNMENT"}, statuses(results))
}

func TestSubmitEntries_EmptyBatch(t *testing.T) {
	f := newFixture(t)
	_, err := f.timesheetService().SubmitEntries(context.Background(), nil)
	assert.ErrorIs(t, err, app.ErrEmptyBatch)
}

func TestSubmitEntries_MalformedRequestAbortsBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.timesheetService().SubmitEntries(ctx, []app.EntryRequest{
		f.req(f.apollo, monday, 1.9),
		{EmployeeID: f.employee.ID, Date: tuesday, Hours: 1.9},
	})
	var reqErr *app.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "project_id", reqErr.Field)
	assert.Contains(t, err.Error(), "entries[1]")

	stored, err := f.timesheets.ListByEmployee(ctx, f.employee.ID, monday, friday)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSubmitEntries_UnknownReferences(t *testing.T) {
	f := newFixture(t)
	svc := f.timesheetService()
	ctx := context.Background()

	_, err := svc.SubmitEntries(ctx, []app.EntryRequest{{EmployeeID: "ghost", ProjectID: f.apollo.ID, Date: monday, Hours: 1.9}})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.SubmitEntries(ctx, []app.EntryRequest{{EmployeeID: f.employee.ID, ProjectID: "nope", Date: monday, Hours: 1.9}})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// staleTimesheets hides stored entries from reads, as if another writer
// committed between the snapshot and the insert.
type staleTimesheets struct {
	repository.TimesheetRepo
}

func (staleTimesheets) ListByEmployee(context.Context, string, time.Time, time.Time) ([]*domain.TimesheetEntry, error) {
	return nil, nil
}

func TestSubmitEntries_StorageConstraintIsFinalArbiter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.timesheets.Create(ctx, testutil.NewTestEntry(f.employee.ID, f.apollo.ID, monday, 1.9)))

	svc := f.timesheetServiceWith(staleTimesheets{f.timesheets}, f.uow)
	results, err := svc.SubmitEntries(ctx, []app.EntryRequest{
		f.req(f.apollo, monday, 1.9),
		f.req(f.gemini, monday, 1.9),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DUPLICATE_ENTRY", "inserted"}, statuses(results))

	stored, err := f.timesheets.ListByEmployee(ctx, f.employee.ID, monday, monday)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 1.9, stored[0].Hours, "the original entry is never overwritten")
}

func TestSubmitEntries_StorageFailureAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	failing := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 1, Err: fmt.Errorf("disk full")}

	svc := f.timesheetServiceWith(f.timesheets, failing)
	results, err := svc.SubmitEntries(ctx, []app.EntryRequest{
		f.req(f.gemini, saturday, 1.9),
		f.req(f.apollo, monday, 1.9),
		f.req(f.apollo, tuesday, 1.9),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entries[1]")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{"NON_WORKDAY"}, statuses(results))

	stored, err := f.timesheets.ListByEmployee(ctx, f.employee.ID, monday, friday)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSubmitEntries_StorageFailureKeepsEarlierInserts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	failing := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 2, Err: fmt.Errorf("disk full")}

	svc := f.timesheetServiceWith(f.timesheets, failing)
	results, err := svc.SubmitEntries(ctx, []app.EntryRequest{
		f.req(f.apollo, monday, 1.9),
		f.req(f.gemini, monday, 1.9),
		f.req(f.mercury, monday, 1.9),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entries[1]")
	assert.Equal(t, []string{"inserted"}, statuses(results))
	assert.Equal(t, 2, failing.Writes(), "the batch stops at the failing write")

	stored, err := f.timesheets.ListByEmployee(ctx, f.employee.ID, monday, monday)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, f.apollo.ID, stored[0].ProjectID)
}

func TestSubmitEntries_ReportsToObserver(t *testing.T) {
	f := newFixture(t)
	obs := &recordingObserver{}

	_, err := f.timesheetService(obs).SubmitEntries(context.Background(), []app.EntryRequest{
		f.req(f.apollo, monday, 1.9),
		f.req(f.apollo, saturday, 1.9),
	})
	require.NoError(t, err)

	ev := obs.last()
	assert.Equal(t, "submit-entries", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2, ev.Fields["entries"])
	assert.Equal(t, 1, ev.Fields["inserted"])
	assert.Equal(t, 1, ev.Fields["rejected"])
}

func TestSummarizePeriod_Errors(t *testing.T) {
	f := newFixture(t)
	svc := f.timesheetService()
	ctx := context.Background()

	_, err := svc.SummarizePeriod(ctx, app.PeriodRequest{EmployeeID: "ghost", Start: monday, End: friday})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.SummarizePeriod(ctx, app.PeriodRequest{EmployeeID: f.employee.ID, Start: friday, End: monday})
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)

	_, err = svc.SummarizePeriod(ctx, app.PeriodRequest{Start: monday, End: friday})
	var reqErr *app.RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestSummarizePeriod_Empty(t *testing.T) {
	f := newFixture(t)

	summary, err := f.timesheetService().SummarizePeriod(context.Background(),
		app.PeriodRequest{EmployeeID: f.employee.ID, Start: monday, End: friday})
	require.NoError(t, err)
	assert.Empty(t, summary.ByProject)
	assert.Empty(t, summary.Projects)
	assert.Empty(t, summary.Dates)
	assert.Zero(t, summary.TotalHours)
}

func weekRange(t *testing.T) calendar.WorkdayRange {
	t.Helper()
	start, end := week()
	rng, err := calendar.Compute(calendar.RangeSpec{Start: &start, End: &end}, calendar.MondayToFriday)
	require.NoError(t, err)
	return rng
}

func TestFindMissingEntries_ShrinksAfterSubmit(t *testing.T) {
	f := newFixture(t)
	svc := f.timesheetService()
	ctx := context.Background()
	rng := weekRange(t)

	before, err := svc.FindMissingEntries(ctx, f.employee.ID, rng)
	require.NoError(t, err)
	// Five workdays across three assigned projects.
	assert.Len(t, before.Gaps, 15)
	assert.Equal(t, f.employee.ID, before.EmployeeID)

	again, err := svc.FindMissingEntries(ctx, f.employee.ID, rng)
	require.NoError(t, err)
	assert.Equal(t, before.Gaps, again.Gaps, "gap detection is idempotent")

	_, err = svc.SubmitEntries(ctx, []app.EntryRequest{f.req(f.apollo, monday, 1.9)})
	require.NoError(t, err)

	after, err := svc.FindMissingEntries(ctx, f.employee.ID, rng)
	require.NoError(t, err)
	assert.Len(t, after.Gaps, 14)
	for _, g := range after.Gaps {
		assert.False(t, g.ProjectID == f.apollo.ID && g.Date.Equal(monday), "submitted pair still reported")
	}
}

func TestFindMissingEntries_UnknownEmployee(t *testing.T) {
	f := newFixture(t)
	_, err := f.timesheetService().FindMissingEntries(context.Background(), "ghost", weekRange(t))
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestListEntries(t *testing.T) {
	f := newFixture(t)
	svc := f.timesheetService()
	ctx := context.Background()

	_, err := svc.SubmitEntries(ctx, []app.EntryRequest{
		{EmployeeID: f.employee.ID, ProjectID: f.apollo.ID, Date: monday, Hours: 1.9, Note: "  kickoff  "},
	})
	require.NoError(t, err)

	entries, err := svc.ListEntries(ctx, app.PeriodRequest{EmployeeID: f.employee.ID, Start: monday, End: friday})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kickoff", entries[0].Note)
}

func TestNewTimesheetService_RejectsUnusableRules(t *testing.T) {
	f := newFixture(t)

	svc, err := NewTimesheetService(f.employees, f.projects, f.assignments, f.timesheets, f.uow, engine.Rules{})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "increment")
}
