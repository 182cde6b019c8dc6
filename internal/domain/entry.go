package domain

import "time"

// DateLayout is the storage and wire format for calendar days.
const DateLayout = "2006-01-02"

// MaxHoursPerEntry is the hard upper bound on a single entry, mirrored by a
// CHECK constraint on the timesheets table.
const MaxHoursPerEntry = 24.0

// TimesheetEntry is hours logged by one employee on one project for one day.
// Entries are immutable once persisted.
type TimesheetEntry struct {
	ID         string
	EmployeeID string
	ProjectID  string
	DateWorked time.Time
	Hours      float64
	Note       string
	CreatedAt  time.Time
}

// EntryKey identifies the (employee, project, date) triple that must be unique.
type EntryKey struct {
	EmployeeID string
	ProjectID  string
	Date       string
}

func (e *TimesheetEntry) Key() EntryKey {
	return EntryKey{
		EmployeeID: e.EmployeeID,
		ProjectID:  e.ProjectID,
		Date:       e.DateWorked.Format(DateLayout),
	}
}

// calendarDay truncates t to midnight UTC of its calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
