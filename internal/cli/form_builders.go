package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/cli/formatter"
	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/engine"
	"github.com/charmbracelet/huh"
)

// dateInput returns a huh.Input for a required YYYY-MM-DD field.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-03-03").
		Value(value).
		Validate(validateDate)
}

// projectSelect offers the given assignments, falling back to every project
// when the employee has none on file.
func projectSelect(assignments []*domain.Assignment, projects []*domain.Project, value *string) *huh.Select[string] {
	var options []huh.Option[string]
	seen := make(map[string]bool)
	for _, a := range assignments {
		if seen[a.ProjectID] {
			continue
		}
		seen[a.ProjectID] = true
		label := a.ProjectName
		if label == "" {
			label = a.ProjectID
		}
		options = append(options, huh.NewOption(label, a.ProjectID))
	}
	if len(options) == 0 {
		for _, p := range projects {
			options = append(options, huh.NewOption(p.DisplayName(), p.ID))
		}
	}
	return huh.NewSelect[string]().
		Title("Project").
		Options(options...).
		Value(value)
}

// hoursInput accepts numbers and the "full day" / "half day" keywords.
func hoursInput(rules engine.Rules, value *string) *huh.Input {
	return huh.NewInput().
		Title("Hours").
		Description(fmt.Sprintf("Multiples of %s, or \"full day\" (%s) / \"half day\" (%s)",
			formatter.FormatHours(rules.IncrementHours),
			formatter.FormatHours(rules.FullDay()),
			formatter.FormatHours(rules.HalfDay()))).
		Placeholder("full day").
		Value(value).
		Validate(func(s string) error {
			_, err := parseHours(s, rules)
			return err
		})
}

func validateDate(s string) error {
	_, err := calendar.ParseDate(strings.TrimSpace(s))
	return err
}
