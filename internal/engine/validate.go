package engine

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/domain"
)

// Validator applies Rules to candidate entries.
type Validator struct {
	rules Rules
}

// NewValidator rejects rules the checks cannot apply, such as a zero
// increment.
func NewValidator(rules Rules) (*Validator, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("validator rules: %w", err)
	}
	return &Validator{rules: rules}, nil
}

// MustValidator is NewValidator for rules known to be valid, such as
// DefaultRules. It panics otherwise.
func MustValidator(rules Rules) *Validator {
	v, err := NewValidator(rules)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) Rules() Rules { return v.rules }

// Validate decides whether candidate may be persisted. The checks run in a
// fixed order and the first failure is returned:
//
//  1. hours are a whole multiple of the increment
//  2. 0 < hours <= 24
//  3. the date is a workday
//  4. an assignment for (employee, project) is active on the date
//  5. the day's total across projects stays within the daily cap
//  6. no entry exists for (employee, project, date)
//
// existingForDay holds the entries already logged (or accepted earlier in the
// same submission) for the candidate's employee; entries for other
// employees or dates are ignored.
func (v *Validator) Validate(candidate *domain.TimesheetEntry, active []*domain.Assignment, existingForDay []*domain.TimesheetEntry) error {
	if candidate.Hours < 0 || !multipleOf(candidate.Hours, centi(v.rules.IncrementHours)) {
		return reject(ReasonInvalidIncrement, "%v is not a multiple of %v", candidate.Hours, v.rules.IncrementHours)
	}

	if candidate.Hours <= 0 || candidate.Hours > domain.MaxHoursPerEntry {
		return reject(ReasonOutOfBounds, "%v must be greater than 0 and at most %v", candidate.Hours, domain.MaxHoursPerEntry)
	}
	hours := centi(candidate.Hours)

	day := calendar.Day(candidate.DateWorked)
	if !v.rules.Workdays.Contains(day.Weekday()) {
		return reject(ReasonNonWorkday, "%s is a %s", calendar.FormatDate(day), day.Weekday())
	}

	if !hasActiveAssignment(candidate, day, active) {
		return reject(ReasonNoActiveAssignment, "no assignment to %s on %s", candidate.ProjectID, calendar.FormatDate(day))
	}

	var logged int64
	duplicate := false
	for _, e := range existingForDay {
		if e.EmployeeID != candidate.EmployeeID || !calendar.Day(e.DateWorked).Equal(day) {
			continue
		}
		logged += centi(e.Hours)
		if e.ProjectID == candidate.ProjectID {
			duplicate = true
		}
	}

	if capc := centi(v.rules.DailyCapHours); logged+hours > capc {
		return reject(ReasonDailyCapExceeded, "%v already logged on %s, cap is %v",
			fromCenti(logged), calendar.FormatDate(day), v.rules.DailyCapHours)
	}

	if duplicate {
		return reject(ReasonDuplicateEntry, "%s already has an entry on %s", candidate.ProjectID, calendar.FormatDate(day))
	}

	return nil
}

func hasActiveAssignment(candidate *domain.TimesheetEntry, day time.Time, active []*domain.Assignment) bool {
	for _, a := range active {
		if a.EmployeeID == candidate.EmployeeID && a.ProjectID == candidate.ProjectID && a.ActiveOn(day) {
			return true
		}
	}
	return false
}
