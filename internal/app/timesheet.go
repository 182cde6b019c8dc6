package app

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/engine"
)

// RangeRequest asks for a workday range. A zero Reference means today.
type RangeRequest struct {
	Reference     time.Time
	LookbackDays  *int
	LookaheadDays *int
	Start         *time.Time
	End           *time.Time
}

// Spec converts the request into a calendar.RangeSpec anchored at now when
// no reference date was given.
func (r RangeRequest) Spec(now time.Time) calendar.RangeSpec {
	ref := r.Reference
	if ref.IsZero() {
		ref = now
	}
	return calendar.RangeSpec{
		Reference:     ref,
		LookbackDays:  r.LookbackDays,
		LookaheadDays: r.LookaheadDays,
		Start:         r.Start,
		End:           r.End,
	}
}

// PeriodRequest scopes a read to one employee over an inclusive date range.
type PeriodRequest struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
}

func (r PeriodRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.EmployeeID) == "" {
		errs = append(errs, fieldError("employee_id", "is required"))
	}
	if r.Start.IsZero() {
		errs = append(errs, fieldError("start", "is required"))
	}
	if r.End.IsZero() {
		errs = append(errs, fieldError("end", "is required"))
	}
	if !r.Start.IsZero() && !r.End.IsZero() && calendar.Day(r.Start).After(calendar.Day(r.End)) {
		errs = append(errs, fmt.Errorf("%w: start %s is after end %s",
			calendar.ErrInvalidRange, calendar.FormatDate(r.Start), calendar.FormatDate(r.End)))
	}
	return errors.Join(errs...)
}

// EntryRequest is one candidate timesheet entry.
type EntryRequest struct {
	EmployeeID string
	ProjectID  string
	Date       time.Time
	Hours      float64
	Note       string
}

// Validate checks field presence and shape only. Business rules such as the
// increment and the daily cap are the engine's concern and produce reason
// codes instead.
func (r EntryRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.EmployeeID) == "" {
		errs = append(errs, fieldError("employee_id", "is required"))
	}
	if strings.TrimSpace(r.ProjectID) == "" {
		errs = append(errs, fieldError("project_id", "is required"))
	}
	if r.Date.IsZero() {
		errs = append(errs, fieldError("date", "is required"))
	}
	if math.IsNaN(r.Hours) || math.IsInf(r.Hours, 0) {
		errs = append(errs, fieldError("hours", "must be a finite number"))
	}
	return errors.Join(errs...)
}

// Entry builds the domain candidate for this request.
func (r EntryRequest) Entry(id string) *domain.TimesheetEntry {
	return &domain.TimesheetEntry{
		ID:         id,
		EmployeeID: r.EmployeeID,
		ProjectID:  r.ProjectID,
		DateWorked: calendar.Day(r.Date),
		Hours:      r.Hours,
		Note:       strings.TrimSpace(r.Note),
	}
}

type EntryStatus string

const (
	EntryInserted EntryStatus = "inserted"
	EntryRejected EntryStatus = "rejected"
)

// EntryResult is the outcome of one EntryRequest, reported in input order.
type EntryResult struct {
	Index   int
	Request EntryRequest
	EntryID string
	Status  EntryStatus
	Reason  ReasonCode
	Detail  string
}

func (r EntryResult) Inserted() bool { return r.Status == EntryInserted }

// Rejected builds a result for a rule failure.
func Rejected(index int, req EntryRequest, err error) EntryResult {
	res := EntryResult{Index: index, Request: req, Status: EntryRejected, Detail: err.Error()}
	if code, ok := engine.ReasonOf(err); ok {
		res.Reason = code
	}
	return res
}

// ProjectHours is the total logged on one project.
type ProjectHours struct {
	ProjectID   string
	ProjectName string
	Hours       float64
}

// PeriodSummary aggregates an employee's entries over a period.
type PeriodSummary struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
	ByProject  map[string]float64
	// Projects carries the same totals ordered by project name.
	Projects   []ProjectHours
	Dates      []time.Time
	TotalHours float64
}

type Gap = engine.Gap

// GapReport lists the (workday, project) pairs still missing an entry.
type GapReport struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
	Gaps       []Gap
}

// ImportResult counts the reference records created by an import.
type ImportResult struct {
	Employees   int
	Projects    int
	Assignments int
}
