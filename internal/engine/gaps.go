package engine

import (
	"sort"
	"time"

	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/domain"
)

// Gap is a workday on which an assignment was active but nothing was logged
// for its project.
type Gap struct {
	Date        time.Time
	EmployeeID  string
	ProjectID   string
	ProjectName string
}

// FindMissing returns the (date, project) pairs of rng's workdays that have an
// active assignment and no matching entry, ordered by date then project ID.
// Only presence matters; hours are not considered.
func FindMissing(rng calendar.WorkdayRange, assignments []*domain.Assignment, existing []*domain.TimesheetEntry) []Gap {
	logged := make(map[domain.EntryKey]bool, len(existing))
	for _, e := range existing {
		logged[e.Key()] = true
	}

	var gaps []Gap
	for _, day := range rng.Workdays {
		date := calendar.FormatDate(day)
		seen := make(map[domain.EntryKey]bool)
		for _, a := range assignments {
			if !a.ActiveOn(day) {
				continue
			}
			k := domain.EntryKey{EmployeeID: a.EmployeeID, ProjectID: a.ProjectID, Date: date}
			if logged[k] || seen[k] {
				continue
			}
			seen[k] = true
			gaps = append(gaps, Gap{
				Date:        day,
				EmployeeID:  a.EmployeeID,
				ProjectID:   a.ProjectID,
				ProjectName: a.ProjectName,
			})
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		if !gaps[i].Date.Equal(gaps[j].Date) {
			return gaps[i].Date.Before(gaps[j].Date)
		}
		if gaps[i].ProjectID != gaps[j].ProjectID {
			return gaps[i].ProjectID < gaps[j].ProjectID
		}
		return gaps[i].EmployeeID < gaps[j].EmployeeID
	})
	return gaps
}
