// Package calendar computes date ranges and the workdays inside them.
// All values are calendar days: midnight UTC, compared without a clock.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned when a computed range starts after it ends.
var ErrInvalidRange = errors.New("invalid date range")

// WorkdayRange is an inclusive [Start, End] period and its workdays in
// ascending order.
type WorkdayRange struct {
	Start    time.Time
	End      time.Time
	Workdays []time.Time
}

// RangeSpec describes how to derive a range from a reference date.
// Precedence: explicit Start/End, then LookbackDays, then LookaheadDays.
// With none set the range is the reference day alone.
type RangeSpec struct {
	Reference     time.Time
	LookbackDays  *int
	LookaheadDays *int
	Start         *time.Time
	End           *time.Time
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Compute resolves spec into a WorkdayRange using the given workday set.
func Compute(spec RangeSpec, workdays WeekdaySet) (WorkdayRange, error) {
	ref := Day(spec.Reference)
	var start, end time.Time

	switch {
	case spec.Start != nil || spec.End != nil:
		if spec.Start == nil || spec.End == nil {
			return WorkdayRange{}, fmt.Errorf("explicit range needs both start and end: %w", ErrInvalidRange)
		}
		start, end = Day(*spec.Start), Day(*spec.End)
	case spec.LookbackDays != nil:
		start, end = ref.AddDate(0, 0, -*spec.LookbackDays), ref
	case spec.LookaheadDays != nil:
		start, end = ref, ref.AddDate(0, 0, *spec.LookaheadDays)
	default:
		start, end = ref, ref
	}

	if start.After(end) {
		return WorkdayRange{}, fmt.Errorf("start %s is after end %s: %w", FormatDate(start), FormatDate(end), ErrInvalidRange)
	}

	return WorkdayRange{
		Start:    start,
		End:      end,
		Workdays: Workdays(start, end, workdays),
	}, nil
}

// Workdays lists the days in [start, end] whose weekday is in set.
func Workdays(start, end time.Time, set WeekdaySet) []time.Time {
	var days []time.Time
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		if set.Contains(d.Weekday()) {
			days = append(days, d)
		}
	}
	return days
}

// Contains reports whether d lies within the range bounds.
func (r WorkdayRange) Contains(d time.Time) bool {
	day := Day(d)
	return !day.Before(r.Start) && !day.After(r.End)
}
