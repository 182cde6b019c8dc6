package calendar

import (
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a bitmask of time.Weekday values.
type WeekdaySet uint8

// MondayToFriday is the default working week.
const MondayToFriday WeekdaySet = 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday | 1<<time.Thursday | 1<<time.Friday

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// NewWeekdaySet builds a set from individual weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << d
	}
	return s
}

// ParseWeekdays parses names such as "mon,tue,wed" or "monday tuesday".
func ParseWeekdays(names []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, raw := range names {
		for _, name := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
			d, ok := weekdayNames[strings.ToLower(name)]
			if !ok {
				return 0, fmt.Errorf("unknown weekday %q", name)
			}
			s |= 1 << d
		}
	}
	if s == 0 {
		return 0, fmt.Errorf("weekday set is empty")
	}
	return s, nil
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<d) != 0
}

// Names returns the short lowercase names in Monday-first order.
func (s WeekdaySet) Names() []string {
	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
	var out []string
	for _, d := range order {
		if s.Contains(d) {
			out = append(out, strings.ToLower(d.String()[:3]))
		}
	}
	return out
}

func (s WeekdaySet) String() string {
	return strings.Join(s.Names(), ",")
}
