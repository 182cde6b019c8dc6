// Package engine holds the timesheet business rules: per-entry validation,
// running daily totals across a submission, and gap detection.
// It performs no I/O; callers pass snapshots read from storage.
package engine

import (
	"fmt"
	"math"

	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/domain"
)

const (
	DefaultIncrementHours = 1.9
	DefaultDailyCapHours  = 7.6
)

// Rules is the configurable part of validation.
type Rules struct {
	IncrementHours float64
	DailyCapHours  float64
	Workdays       calendar.WeekdaySet
}

func DefaultRules() Rules {
	return Rules{
		IncrementHours: DefaultIncrementHours,
		DailyCapHours:  DefaultDailyCapHours,
		Workdays:       calendar.MondayToFriday,
	}
}

// Validate rejects rule sets the engine cannot apply.
func (r Rules) Validate() error {
	inc, ok := toCenti(r.IncrementHours)
	if !ok || inc <= 0 {
		return fmt.Errorf("increment must be a positive number of hours with at most two decimals, got %v", r.IncrementHours)
	}
	capc, ok := toCenti(r.DailyCapHours)
	if !ok || capc <= 0 || capc > centi(domain.MaxHoursPerEntry) {
		return fmt.Errorf("daily cap must be in (0, 24] with at most two decimals, got %v", r.DailyCapHours)
	}
	if r.Workdays == 0 {
		return fmt.Errorf("at least one workday is required")
	}
	return nil
}

// FullDay is the hours a "full day" phrase maps to.
func (r Rules) FullDay() float64 { return r.DailyCapHours }

// HalfDay is the hours a "half day" phrase maps to: half the cap, rounded
// down to the hundredth. A cap with an odd number of hundredths (7.51) gives
// 3.75, not 3.755.
func (r Rules) HalfDay() float64 { return fromCenti(centi(r.DailyCapHours) / 2) }

// Hours are compared in integer hundredths so that 1.9*3 equals 5.7.
const centiTolerance = 1e-6

// maxExactCenti is the largest hundredths count a float64 holds exactly.
const maxExactCenti = 1 << 53

// toCenti converts hours to hundredths, reporting false when the value is not
// finite, has more than two decimals, or is too large to count exactly.
func toCenti(h float64) (int64, bool) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, false
	}
	scaled := h * 100
	rounded := math.Round(scaled)
	if math.Abs(rounded) > maxExactCenti {
		return 0, false
	}
	if math.Abs(scaled-rounded) > centiTolerance*100 {
		return 0, false
	}
	return int64(rounded), true
}

// multipleOf reports whether h is a whole number of inc hundredths. Past
// maxExactCenti every float64 is already a whole number far coarser than
// inc, so the quotient decides.
func multipleOf(h float64, inc int64) bool {
	if inc <= 0 {
		return false
	}
	if c, ok := toCenti(h); ok {
		return c%inc == 0
	}
	if math.IsNaN(h) || math.IsInf(h, 0) || math.Abs(h*100) <= maxExactCenti {
		return false
	}
	q := h * 100 / float64(inc)
	return !math.IsInf(q, 0) && q == math.Trunc(q)
}

func centi(h float64) int64 {
	c, _ := toCenti(h)
	return c
}

func fromCenti(c int64) float64 {
	return float64(c) / 100
}

// RoundHours rounds to two decimals, the precision hours are stored at.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
