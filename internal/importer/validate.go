package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheets/internal/domain"
)

// ValidateReferenceSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateReferenceSchema(schema *ReferenceSchema) []error {
	var errs []error

	employeeIDs := make(map[string]bool)
	errs = append(errs, validateEmployees(schema.Employees, employeeIDs)...)

	projectIDs := make(map[string]bool)
	errs = append(errs, validateProjects(schema.Projects, projectIDs)...)

	errs = append(errs, validateAssignments(schema.Assignments)...)

	if len(schema.Employees)+len(schema.Projects)+len(schema.Assignments) == 0 {
		errs = append(errs, fmt.Errorf("import file contains no employees, projects or assignments"))
	}
	return errs
}

func validateEmployees(employees []EmployeeImport, ids map[string]bool) []error {
	var errs []error

	for i, e := range employees {
		prefix := fmt.Sprintf("employees[%d]", i)

		if e.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[e.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, e.ID))
		} else {
			ids[e.ID] = true
		}
		if strings.TrimSpace(e.FirstName+e.LastName) == "" {
			errs = append(errs, fmt.Errorf("%s: first_name or last_name is required", prefix))
		}
	}
	return errs
}

func validateProjects(projects []ProjectImport, ids map[string]bool) []error {
	var errs []error
	names := make(map[string]bool)

	for i, p := range projects {
		prefix := fmt.Sprintf("projects[%d]", i)

		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, p.ID))
		} else {
			ids[p.ID] = true
		}

		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate project name %q", prefix, p.Name))
		} else {
			names[name] = true
		}
	}
	return errs
}

// validateAssignments checks shape only; employee and project references may
// point at rows already in storage, so existence is left to foreign keys.
func validateAssignments(assignments []AssignmentImport) []error {
	var errs []error

	for i, a := range assignments {
		prefix := fmt.Sprintf("assignments[%d]", i)

		if a.EmployeeID == "" {
			errs = append(errs, fmt.Errorf("%s.employee_id is required", prefix))
		}
		if a.ProjectID == "" {
			errs = append(errs, fmt.Errorf("%s.project_id is required", prefix))
		}

		start, startErr := parseRequiredDate(prefix+".start_date", a.StartDate)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		if a.EndDate != nil {
			end, err := time.Parse(domain.DateLayout, *a.EndDate)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.end_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *a.EndDate))
			} else if startErr == nil && end.Before(start) {
				errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", prefix, *a.EndDate, a.StartDate))
			}
		}
	}
	return errs
}

// ValidateEntryBatch checks that every entry has a project, an employee
// (directly or via the batch) and well-formed date. Hours text is
// interpreted by the caller.
func ValidateEntryBatch(batch *EntryBatch) []error {
	var errs []error

	if len(batch.Entries) == 0 {
		return []error{fmt.Errorf("entry file contains no entries")}
	}
	for i, e := range batch.Entries {
		prefix := fmt.Sprintf("entries[%d]", i)

		if e.EmployeeID == "" && batch.EmployeeID == "" {
			errs = append(errs, fmt.Errorf("%s.employee_id is required when the batch has no employee_id", prefix))
		}
		if strings.TrimSpace(e.Project) == "" {
			errs = append(errs, fmt.Errorf("%s.project is required", prefix))
		}
		if _, err := parseRequiredDate(prefix+".date", e.Date); err != nil {
			errs = append(errs, err)
		}
		if e.Hours.Text == "" {
			errs = append(errs, fmt.Errorf("%s.hours is required", prefix))
		}
	}
	return errs
}

func parseRequiredDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)
	}
	return t, nil
}
