package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReferenceSchema is the top-level JSON structure for reference-data import:
// the employees, projects and assignments maintained outside the rules engine.
type ReferenceSchema struct {
	Employees   []EmployeeImport   `json:"employees"`
	Projects    []ProjectImport    `json:"projects"`
	Assignments []AssignmentImport `json:"assignments"`
}

// EmployeeImport defines an employee in the import file.
type EmployeeImport struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ProjectImport defines a project in the import file.
type ProjectImport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssignmentImport binds an employee to a project. EndDate is optional;
// an absent end date means ongoing.
type AssignmentImport struct {
	ID         string  `json:"id,omitempty"`
	EmployeeID string  `json:"employee_id"`
	ProjectID  string  `json:"project_id"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
}

// EntryBatch is a JSON list of candidate timesheet entries.
type EntryBatch struct {
	EmployeeID string        `json:"employee_id,omitempty"`
	Entries    []EntryImport `json:"entries"`
}

// EntryImport is one candidate entry. Project may be an ID or a project name.
// EmployeeID falls back to the batch-level employee.
type EntryImport struct {
	EmployeeID string     `json:"employee_id,omitempty"`
	Project    string     `json:"project"`
	Date       string     `json:"date"`
	Hours      HoursField `json:"hours"`
	Note       string     `json:"note,omitempty"`
}

// HoursField accepts either a JSON number (3.8) or a string ("3.8",
// "full day", "half day"). The raw text is kept for the caller to interpret.
type HoursField struct {
	Text string
}

func (h *HoursField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		h.Text = strings.TrimSpace(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("hours must be a number or a string: %w", err)
	}
	h.Text = n.String()
	return nil
}

func (h HoursField) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(h.Text, 64); err == nil {
		return []byte(h.Text), nil
	}
	return json.Marshal(h.Text)
}

// LoadReferenceSchema reads and parses a reference-data JSON file.
func LoadReferenceSchema(path string) (*ReferenceSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ReferenceSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// LoadEntryBatch reads and parses an entry batch JSON file.
func LoadEntryBatch(path string) (*EntryBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batch EntryBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parsing entry file: %w", err)
	}
	return &batch, nil
}
