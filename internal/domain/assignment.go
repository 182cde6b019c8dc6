package domain

import (
	"fmt"
	"time"
)

// Assignment binds an employee to a project for an inclusive date range.
// A nil EndDate means the assignment is ongoing.
type Assignment struct {
	ID          string
	EmployeeID  string
	ProjectID   string
	ProjectName string
	StartDate   time.Time
	EndDate     *time.Time
}

// Validate enforces start <= end when an end date is present.
func (a *Assignment) Validate() error {
	if a.EmployeeID == "" || a.ProjectID == "" {
		return fmt.Errorf("assignment requires employee and project")
	}
	if a.StartDate.IsZero() {
		return fmt.Errorf("assignment %s/%s: start date is required", a.EmployeeID, a.ProjectID)
	}
	if a.EndDate != nil && calendarDay(*a.EndDate).Before(calendarDay(a.StartDate)) {
		return fmt.Errorf("assignment %s/%s: end date %s is before start date %s",
			a.EmployeeID, a.ProjectID, a.EndDate.Format(DateLayout), a.StartDate.Format(DateLayout))
	}
	return nil
}

// ActiveOn reports whether d falls within [StartDate, EndDate].
func (a *Assignment) ActiveOn(d time.Time) bool {
	day := calendarDay(d)
	if day.Before(calendarDay(a.StartDate)) {
		return false
	}
	return a.EndDate == nil || !day.After(calendarDay(*a.EndDate))
}

// Intersects reports whether the assignment is active on any day of [start, end].
func (a *Assignment) Intersects(start, end time.Time) bool {
	if calendarDay(a.StartDate).After(calendarDay(end)) {
		return false
	}
	return a.EndDate == nil || !calendarDay(*a.EndDate).Before(calendarDay(start))
}
