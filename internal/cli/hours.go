package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/timesheets/internal/engine"
)

// parseHours turns user input into hours. Besides plain numbers ("3.8",
// "3.8h") it accepts "full day" and "half day" phrasings ("all day",
// "fulltime", "halftime"), which map to the daily cap and half of it. Rule checks are left to the engine.
func parseHours(text string, rules engine.Rules) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "-", " ")), " ")

	switch s {
	case "":
		return 0, fmt.Errorf("hours are required")
	case "full", "full day", "fullday", "day", "all day", "allday",
		"fulltime", "full time", "whole day", "the whole day", "worked the whole day", "worked all day":
		return rules.FullDay(), nil
	case "half", "half day", "halfday", "halftime", "half time":
		return rules.HalfDay(), nil
	}

	num := strings.TrimSpace(strings.TrimSuffix(s, "h"))
	h, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, fmt.Errorf("invalid hours %q (expected a number, \"full day\" or \"half day\")", text)
	}
	return h, nil
}
