package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/db"
	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/engine"
	"github.com/alexanderramin/timesheets/internal/repository"
	"github.com/google/uuid"
)

type timesheetService struct {
	employees   repository.EmployeeRepo
	projects    repository.ProjectRepo
	assignments repository.AssignmentRepo
	timesheets  repository.TimesheetRepo
	uow         db.UnitOfWork
	validator   *engine.Validator
	observer    UseCaseObserver
}

func NewTimesheetService(
	employees repository.EmployeeRepo,
	projects repository.ProjectRepo,
	assignments repository.AssignmentRepo,
	timesheets repository.TimesheetRepo,
	uow db.UnitOfWork,
	rules engine.Rules,
	observers ...UseCaseObserver,
) (TimesheetService, error) {
	validator, err := engine.NewValidator(rules)
	if err != nil {
		return nil, err
	}
	return &timesheetService{
		employees:   employees,
		projects:    projects,
		assignments: assignments,
		timesheets:  timesheets,
		uow:         uow,
		validator:   validator,
		observer:    useCaseObserverOrNoop(observers),
	}, nil
}

func (s *timesheetService) SummarizePeriod(ctx context.Context, req app.PeriodRequest) (summary *app.PeriodSummary, err error) {
	fields := map[string]any{"employee": req.EmployeeID}
	defer observe(ctx, s.observer, "summarize-period", time.Now(), fields, &err)

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if _, err = s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	start, end := calendar.Day(req.Start), calendar.Day(req.End)
	totals, err := s.timesheets.SumByProject(ctx, req.EmployeeID, start, end)
	if err != nil {
		return nil, err
	}
	dates, err := s.timesheets.ListDates(ctx, req.EmployeeID, start, end)
	if err != nil {
		return nil, err
	}

	summary = &app.PeriodSummary{
		EmployeeID: req.EmployeeID,
		Start:      start,
		End:        end,
		ByProject:  make(map[string]float64, len(totals)),
		Projects:   make([]app.ProjectHours, 0, len(totals)),
		Dates:      dates,
	}
	for _, t := range totals {
		summary.ByProject[t.ProjectID] = t.Hours
		summary.Projects = append(summary.Projects, app.ProjectHours{
			ProjectID:   t.ProjectID,
			ProjectName: t.ProjectName,
			Hours:       t.Hours,
		})
		summary.TotalHours = engine.RoundHours(summary.TotalHours + t.Hours)
	}
	if summary.Dates == nil {
		summary.Dates = []time.Time{}
	}
	fields["projects"] = len(summary.Projects)
	fields["total_hours"] = summary.TotalHours
	return summary, nil
}

func (s *timesheetService) ListEntries(ctx context.Context, req app.PeriodRequest) ([]*domain.TimesheetEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}
	return s.timesheets.ListByEmployee(ctx, req.EmployeeID, calendar.Day(req.Start), calendar.Day(req.End))
}

func (s *timesheetService) FindMissingEntries(ctx context.Context, employeeID string, rng calendar.WorkdayRange) (report *app.GapReport, err error) {
	fields := map[string]any{"employee": employeeID}
	defer observe(ctx, s.observer, "find-missing-entries", time.Now(), fields, &err)

	if err = (app.PeriodRequest{EmployeeID: employeeID, Start: rng.Start, End: rng.End}).Validate(); err != nil {
		return nil, err
	}
	if _, err = s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	active, err := s.assignments.ListActive(ctx, employeeID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	existing, err := s.timesheets.ListByEmployee(ctx, employeeID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	report = &app.GapReport{
		EmployeeID: employeeID,
		Start:      rng.Start,
		End:        rng.End,
		Gaps:       engine.FindMissing(rng, active, existing),
	}
	fields["gaps"] = len(report.Gaps)
	return report, nil
}

// employeeSpan is the date range one employee's candidates cover.
type employeeSpan struct {
	start, end time.Time
}

// SubmitEntries screens each candidate in input order and persists accepted
// ones in their own transaction. Rule failures reject only that entry.
// Malformed requests, unknown employees or projects and storage failures
// abort the call; entries committed before a storage failure stay committed
// and are reported alongside the error.
func (s *timesheetService) SubmitEntries(ctx context.Context, reqs []app.EntryRequest) (results []app.EntryResult, err error) {
	fields := map[string]any{"entries": len(reqs)}
	defer observe(ctx, s.observer, "submit-entries", time.Now(), fields, &err)

	if len(reqs) == 0 {
		return nil, app.ErrEmptyBatch
	}
	var invalid []error
	for i, req := range reqs {
		if verr := req.Validate(); verr != nil {
			invalid = append(invalid, fmt.Errorf("entries[%d]: %w", i, verr))
		}
	}
	if len(invalid) > 0 {
		return nil, errors.Join(invalid...)
	}

	spans, err := s.checkReferences(ctx, reqs)
	if err != nil {
		return nil, err
	}
	batch, err := s.snapshot(ctx, spans)
	if err != nil {
		return nil, err
	}

	results = make([]app.EntryResult, 0, len(reqs))
	inserted := 0
	for i, req := range reqs {
		entry := req.Entry(uuid.New().String())
		if rerr := batch.Screen(entry); rerr != nil {
			results = append(results, app.Rejected(i, req, rerr))
			continue
		}

		perr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteTimesheetRepo(tx).Create(ctx, entry)
		})
		switch {
		case perr == nil:
			batch.Accept(entry)
			inserted++
			results = append(results, app.EntryResult{
				Index:   i,
				Request: req,
				EntryID: entry.ID,
				Status:  app.EntryInserted,
			})
		case errors.Is(perr, repository.ErrDuplicate):
			results = append(results, app.Rejected(i, req, &engine.RuleError{
				Code:   engine.ReasonDuplicateEntry,
				Detail: fmt.Sprintf("entry for project %s on %s already exists", req.ProjectID, calendar.FormatDate(entry.DateWorked)),
			}))
		case errors.Is(perr, repository.ErrCheckViolation):
			results = append(results, app.Rejected(i, req, &engine.RuleError{
				Code:   engine.ReasonOutOfBounds,
				Detail: fmt.Sprintf("%v hours rejected by storage", req.Hours),
			}))
		default:
			fields["inserted"] = inserted
			return results, fmt.Errorf("persisting entries[%d]: %w", i, perr)
		}
	}

	fields["inserted"] = inserted
	fields["rejected"] = len(results) - inserted
	return results, nil
}

// checkReferences verifies every employee and project exists and returns the
// date span each employee's candidates cover.
func (s *timesheetService) checkReferences(ctx context.Context, reqs []app.EntryRequest) (map[string]employeeSpan, error) {
	spans := make(map[string]employeeSpan)
	seenProjects := make(map[string]bool)
	for _, req := range reqs {
		day := calendar.Day(req.Date)
		span, ok := spans[req.EmployeeID]
		if !ok {
			if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
				return nil, err
			}
			span = employeeSpan{start: day, end: day}
		}
		if day.Before(span.start) {
			span.start = day
		}
		if day.After(span.end) {
			span.end = day
		}
		spans[req.EmployeeID] = span

		if !seenProjects[req.ProjectID] {
			if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
				return nil, err
			}
			seenProjects[req.ProjectID] = true
		}
	}
	return spans, nil
}

// snapshot reads assignments and stored entries for every employee in the
// batch and seeds the running ledger with them.
func (s *timesheetService) snapshot(ctx context.Context, spans map[string]employeeSpan) (*engine.Batch, error) {
	employees := make([]string, 0, len(spans))
	for id := range spans {
		employees = append(employees, id)
	}
	sort.Strings(employees)

	var assignments []*domain.Assignment
	var existing []*domain.TimesheetEntry
	for _, id := range employees {
		span := spans[id]
		active, err := s.assignments.ListActive(ctx, id, span.start, span.end)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, active...)

		entries, err := s.timesheets.ListByEmployee(ctx, id, span.start, span.end)
		if err != nil {
			return nil, err
		}
		existing = append(existing, entries...)
	}
	return engine.NewBatch(s.validator, assignments, existing), nil
}
