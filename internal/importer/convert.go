package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/google/uuid"
)

// Reference holds the domain records produced from a ReferenceSchema.
type Reference struct {
	Employees   []*domain.Employee
	Projects    []*domain.Project
	Assignments []*domain.Assignment
}

// Convert transforms a validated ReferenceSchema into domain objects ready for persistence.
// Call ValidateReferenceSchema first; Convert assumes the schema is valid.
func Convert(schema *ReferenceSchema) (*Reference, error) {
	ref := &Reference{
		Employees:   make([]*domain.Employee, 0, len(schema.Employees)),
		Projects:    make([]*domain.Project, 0, len(schema.Projects)),
		Assignments: make([]*domain.Assignment, 0, len(schema.Assignments)),
	}

	for _, e := range schema.Employees {
		ref.Employees = append(ref.Employees, &domain.Employee{
			ID:        e.ID,
			FirstName: strings.TrimSpace(e.FirstName),
			LastName:  strings.TrimSpace(e.LastName),
		})
	}

	for _, p := range schema.Projects {
		ref.Projects = append(ref.Projects, &domain.Project{
			ID:   p.ID,
			Name: strings.TrimSpace(p.Name),
		})
	}

	for i, a := range schema.Assignments {
		start, err := time.Parse(domain.DateLayout, a.StartDate)
		if err != nil {
			return nil, fmt.Errorf("assignments[%d]: parsing start_date: %w", i, err)
		}
		id := a.ID
		if id == "" {
			id = uuid.New().String()
		}
		ref.Assignments = append(ref.Assignments, &domain.Assignment{
			ID:         id,
			EmployeeID: a.EmployeeID,
			ProjectID:  a.ProjectID,
			StartDate:  start,
			EndDate:    parseOptionalDate(a.EndDate),
		})
	}

	return ref, nil
}

// ParsedEntry is an entry from an EntryBatch with its date parsed and its
// employee resolved. Project and hours remain as written.
type ParsedEntry struct {
	EmployeeID string
	Project    string
	Date       time.Time
	HoursText  string
	Note       string
}

// ConvertEntries resolves batch-level defaults and parses dates.
// Call ValidateEntryBatch first.
func ConvertEntries(batch *EntryBatch) ([]ParsedEntry, error) {
	entries := make([]ParsedEntry, 0, len(batch.Entries))
	for i, e := range batch.Entries {
		date, err := time.Parse(domain.DateLayout, e.Date)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: parsing date: %w", i, err)
		}
		employee := e.EmployeeID
		if employee == "" {
			employee = batch.EmployeeID
		}
		entries = append(entries, ParsedEntry{
			EmployeeID: employee,
			Project:    strings.TrimSpace(e.Project),
			Date:       date,
			HoursText:  e.Hours.Text,
			Note:       e.Note,
		})
	}
	return entries, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(domain.DateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
