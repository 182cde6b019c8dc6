package engine

import (
	"time"

	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/domain"
)

type dayKey struct {
	employeeID string
	date       string
}

// Batch screens the entries of one submission in order. Entries accepted
// earlier in the batch count toward the daily cap and the duplicate check
// of later ones.
type Batch struct {
	validator   *Validator
	assignments []*domain.Assignment
	ledger      map[dayKey][]*domain.TimesheetEntry
}

// NewBatch seeds the running ledger with entries already in storage.
func NewBatch(v *Validator, assignments []*domain.Assignment, existing []*domain.TimesheetEntry) *Batch {
	b := &Batch{
		validator:   v,
		assignments: assignments,
		ledger:      make(map[dayKey][]*domain.TimesheetEntry),
	}
	for _, e := range existing {
		b.Accept(e)
	}
	return b
}

// Screen validates candidate against the ledger without recording it.
func (b *Batch) Screen(candidate *domain.TimesheetEntry) error {
	return b.validator.Validate(candidate, b.assignments, b.ledger[keyOf(candidate)])
}

// Accept records an entry so that later candidates see it.
func (b *Batch) Accept(e *domain.TimesheetEntry) {
	k := keyOf(e)
	b.ledger[k] = append(b.ledger[k], e)
}

// Admit screens candidate and records it when it passes.
func (b *Batch) Admit(candidate *domain.TimesheetEntry) error {
	if err := b.Screen(candidate); err != nil {
		return err
	}
	b.Accept(candidate)
	return nil
}

// LoggedHours returns the hours recorded for an employee on a day.
func (b *Batch) LoggedHours(employeeID string, day time.Time) float64 {
	var total int64
	for _, e := range b.ledger[dayKey{employeeID: employeeID, date: calendar.FormatDate(calendar.Day(day))}] {
		total += centi(e.Hours)
	}
	return fromCenti(total)
}

func keyOf(e *domain.TimesheetEntry) dayKey {
	return dayKey{employeeID: e.EmployeeID, date: calendar.FormatDate(calendar.Day(e.DateWorked))}
}
