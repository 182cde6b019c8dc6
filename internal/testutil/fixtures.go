package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/google/uuid"
)

var testIDCounter atomic.Int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s%03d", prefix, testIDCounter.Add(1))
}

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(fmt.Sprintf("testutil.Date(%q): %v", s, err))
	}
	return t
}

// Employee options
type EmployeeOption func(*domain.Employee)

func WithEmployeeID(id string) EmployeeOption {
	return func(e *domain.Employee) {
		e.ID = id
	}
}

func NewTestEmployee(first, last string, opts ...EmployeeOption) *domain.Employee {
	e := &domain.Employee{
		ID:        nextID("E"),
		FirstName: first,
		LastName:  last,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ID = id
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:   nextID("P"),
		Name: name,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Assignment options
type AssignmentOption func(*domain.Assignment)

func WithEndDate(d time.Time) AssignmentOption {
	return func(a *domain.Assignment) {
		a.EndDate = &d
	}
}

// NewTestAssignment builds an ongoing assignment starting on start.
func NewTestAssignment(employeeID, projectID string, start time.Time, opts ...AssignmentOption) *domain.Assignment {
	a := &domain.Assignment{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		ProjectID:  projectID,
		StartDate:  start,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Entry options
type EntryOption func(*domain.TimesheetEntry)

func WithNote(n string) EntryOption {
	return func(e *domain.TimesheetEntry) {
		e.Note = n
	}
}

func WithCreatedAt(t time.Time) EntryOption {
	return func(e *domain.TimesheetEntry) {
		e.CreatedAt = t
	}
}

func NewTestEntry(employeeID, projectID string, day time.Time, hours float64, opts ...EntryOption) *domain.TimesheetEntry {
	e := &domain.TimesheetEntry{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		ProjectID:  projectID,
		DateWorked: day,
		Hours:      hours,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
