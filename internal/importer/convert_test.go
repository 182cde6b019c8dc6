package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Reference(t *testing.T) {
	ref, err := Convert(validReferenceSchema())
	require.NoError(t, err)

	require.Len(t, ref.Employees, 1)
	assert.Equal(t, "Yash Mehta", ref.Employees[0].Name())

	require.Len(t, ref.Projects, 2)
	assert.Equal(t, "P2", ref.Projects[1].ID)

	require.Len(t, ref.Assignments, 2)
	assert.NotEmpty(t, ref.Assignments[0].ID, "missing assignment ids are generated")
	assert.Nil(t, ref.Assignments[0].EndDate)
	require.NotNil(t, ref.Assignments[1].EndDate)
	assert.Equal(t, "2025-06-30", ref.Assignments[1].EndDate.Format(domain.DateLayout))
	for _, a := range ref.Assignments {
		assert.NoError(t, a.Validate())
	}
}

func TestConvert_KeepsExplicitAssignmentID(t *testing.T) {
	schema := validReferenceSchema()
	schema.Assignments[0].ID = "A-1"

	ref, err := Convert(schema)
	require.NoError(t, err)
	assert.Equal(t, "A-1", ref.Assignments[0].ID)
}

func TestHoursField_NumberOrString(t *testing.T) {
	var batch EntryBatch
	raw := `{"employee_id":"E1","entries":[
		{"project":"Apollo","date":"2025-03-03","hours":3.8},
		{"project":"Gemini","date":"2025-03-03","hours":"half day"},
		{"project":"Gemini","date":"2025-03-04","hours":"1.9"}
	]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &batch))

	assert.Equal(t, "3.8", batch.Entries[0].Hours.Text)
	assert.Equal(t, "half day", batch.Entries[1].Hours.Text)
	assert.Equal(t, "1.9", batch.Entries[2].Hours.Text)
}

func TestHoursField_RejectsObjects(t *testing.T) {
	var e EntryImport
	err := json.Unmarshal([]byte(`{"hours":{"value":3.8}}`), &e)
	assert.Error(t, err)
}

func TestConvertEntries_BatchEmployeeFallback(t *testing.T) {
	batch := &EntryBatch{
		EmployeeID: "E1",
		Entries: []EntryImport{
			{Project: " Apollo ", Date: "2025-03-03", Hours: HoursField{Text: "3.8"}, Note: "standup"},
			{EmployeeID: "E2", Project: "Gemini", Date: "2025-03-04", Hours: HoursField{Text: "full day"}},
		},
	}
	require.Empty(t, ValidateEntryBatch(batch))

	entries, err := ConvertEntries(batch)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ParsedEntry{
		EmployeeID: "E1",
		Project:    "Apollo",
		Date:       entries[0].Date,
		HoursText:  "3.8",
		Note:       "standup",
	}, entries[0])
	assert.Equal(t, "2025-03-03", entries[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "E2", entries[1].EmployeeID)
	assert.Equal(t, "full day", entries[1].HoursText)
}

func TestLoadReferenceSchema_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.json")
	data, err := json.Marshal(validReferenceSchema())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	schema, err := LoadReferenceSchema(path)
	require.NoError(t, err)
	assert.Equal(t, validReferenceSchema(), schema)
}

func TestLoadReferenceSchema_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadReferenceSchema(path)
	assert.ErrorContains(t, err, "parsing import file")
}
