package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	tsapp "github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/engine"
	"github.com/alexanderramin/timesheets/internal/importer"
	"github.com/alexanderramin/timesheets/internal/repository"
	"github.com/alexanderramin/timesheets/internal/service"
	"github.com/alexanderramin/timesheets/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is a Friday; the default six-day lookback covers Mon 03 to Fri 07.
var testNow = time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	rules := engine.DefaultRules()

	employees := repository.NewSQLiteEmployeeRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	assignments := repository.NewSQLiteAssignmentRepo(database)
	timesheets := repository.NewSQLiteTimesheetRepo(database)
	timesheetSvc, err := service.NewTimesheetService(employees, projects, assignments, timesheets, uow, rules)
	require.NoError(t, err)

	return &App{
		Calendar:        service.NewCalendarService(rules.Workdays),
		Assignments:     service.NewAssignmentService(employees, assignments),
		Timesheets:      timesheetSvc,
		Directory:       service.NewDirectoryService(employees, projects),
		Import:          service.NewImportService(uow),
		Rules:           rules,
		DefaultEmployee: "E001",
		LookbackDays:    6,
		Now:             func() time.Time { return testNow },
	}
}

// seedReference imports one employee assigned to Apollo (P001) and Gemini
// (P002) from 2025-01-01, plus the unassigned Skylab (P003).
func seedReference(t *testing.T, app *App) {
	t.Helper()
	_, err := app.Import.ImportSchema(context.Background(), &importer.ReferenceSchema{
		Employees: []importer.EmployeeImport{{ID: "E001", FirstName: "Yash", LastName: "Mehta"}},
		Projects: []importer.ProjectImport{
			{ID: "P001", Name: "Apollo"},
			{ID: "P002", Name: "Gemini"},
			{ID: "P003", Name: "Skylab"},
		},
		Assignments: []importer.AssignmentImport{
			{EmployeeID: "E001", ProjectID: "P001", StartDate: "2025-01-01"},
			{EmployeeID: "E001", ProjectID: "P002", StartDate: "2025-01-01"},
		},
	})
	require.NoError(t, err)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func periodAll() tsapp.PeriodRequest {
	return tsapp.PeriodRequest{
		EmployeeID: "E001",
		Start:      testutil.Date("2025-01-01"),
		End:        testutil.Date("2025-12-31"),
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// --- range ---

func TestRangeCmd_DefaultLookback(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "range")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-01 → 2025-03-07")
	assert.Contains(t, out, "(5 workdays)")
	assert.NotContains(t, out, "Sat 2025-03-01")
}

func TestRangeCmd_AheadFromDate(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "range", "--ahead", "4", "--date", "2025-03-07")
	require.NoError(t, err)
	assert.Contains(t, out, "Fri 2025-03-07")
	assert.Contains(t, out, "Mon 2025-03-10")
	assert.Contains(t, out, "Tue 2025-03-11")
	assert.Contains(t, out, "(3 workdays)")
}

func TestRangeCmd_InvertedExplicitRange(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "range", "--from", "2025-03-07", "--to", "2025-03-03")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date range")
}

func TestRangeCmd_BadDateFlag(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "range", "--date", "07/03/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--date")
}

// --- directory ---

func TestDirectoryCmds(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	out, err := executeCmd(t, app, "employees")
	require.NoError(t, err)
	assert.Contains(t, out, "E001")
	assert.Contains(t, out, "Yash Mehta")

	out, err = executeCmd(t, app, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Apollo")
	assert.Contains(t, out, "Skylab")
}

func TestAssignmentsCmd(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	out, err := executeCmd(t, app, "assignments")
	require.NoError(t, err)
	assert.Contains(t, out, "Apollo")
	assert.Contains(t, out, "Gemini")
	assert.NotContains(t, out, "Skylab")
	assert.Contains(t, out, "ongoing")

	out, err = executeCmd(t, app, "assignments", "--from", "2024-01-01", "--to", "2024-12-31")
	require.NoError(t, err)
	assert.Contains(t, out, "No assignments.")
}

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	path := writeFile(t, "reference.json", `{
  "employees": [{"id": "E001", "first_name": "Yash", "last_name": "Mehta"}],
  "projects": [{"id": "P001", "name": "Apollo"}],
  "assignments": [{"employee_id": "E001", "project_id": "P001", "start_date": "2025-01-01"}]
}`)

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "IMPORTED")

	employees, err := app.Directory.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Len(t, employees, 1)
}

func TestImportCmd_InvalidFileRejected(t *testing.T) {
	app := testApp(t)
	path := writeFile(t, "reference.json", `{"employees": [{"id": "", "first_name": "Yash"}]}`)

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)
}

// --- log ---

func TestLogCmd_FullDayInserted(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	out, err := executeCmd(t, app, "log", "--project", "apollo", "--date", "2025-03-03", "--hours", "full day")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ inserted")
	assert.Contains(t, out, "7.60")

	out, err = executeCmd(t, app, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Apollo")
	assert.Contains(t, out, "7.60")
}

func TestLogCmd_DefaultsToToday(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	out, err := executeCmd(t, app, "log", "-p", "P002", "--hours", "1.9")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-07")
}

func TestLogCmd_RejectionIsAnError(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	out, err := executeCmd(t, app, "log", "--project", "Apollo", "--date", "2025-03-08", "--hours", "3.8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NON_WORKDAY")
	assert.Contains(t, out, "NON_WORKDAY")
}

func TestLogCmd_UnknownProject(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	_, err := executeCmd(t, app, "log", "--project", "Voyager", "--hours", "3.8")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogCmd_MissingFlagsWithoutTerminal(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	_, err := executeCmd(t, app, "log", "--project", "Apollo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--interactive")
}

func TestLogCmd_NoEmployee(t *testing.T) {
	app := testApp(t)
	app.DefaultEmployee = ""

	_, err := executeCmd(t, app, "log", "--project", "Apollo", "--hours", "3.8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--employee")
}

func TestLogCmd_EmployeeFlagOverridesDefault(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)
	app.DefaultEmployee = "E404"

	_, err := executeCmd(t, app, "--employee", "E001", "log", "--project", "Apollo", "--hours", "3.8")
	require.NoError(t, err)
}

// --- submit ---

func TestSubmitCmd_MixedBatch(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)
	path := writeFile(t, "batch.json", `{
  "employee_id": "E001",
  "entries": [
    {"project": "Apollo", "date": "2025-03-03", "hours": 1.9},
    {"project": "P002",   "date": "2025-03-03", "hours": "half day"},
    {"project": "Apollo", "date": "2025-03-03", "hours": 1.9}
  ]
}`)

	out, err := executeCmd(t, app, "submit", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 inserted, 1 rejected")
	assert.Contains(t, out, "DUPLICATE_ENTRY")
}

func TestSubmitCmd_FallsBackToDefaultEmployee(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)
	path := writeFile(t, "batch.json", `{"entries": [{"project": "Apollo", "date": "2025-03-04", "hours": "full"}]}`)

	out, err := executeCmd(t, app, "submit", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 inserted, 0 rejected")
}

func TestSubmitCmd_CollectsFileProblems(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)
	path := writeFile(t, "batch.json", `{
  "entries": [
    {"project": "Apollo", "date": "2025-03-03", "hours": "lots"},
    {"project": "Voyager", "date": "2025-03-03", "hours": 1.9}
  ]
}`)

	_, err := executeCmd(t, app, "submit", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entries[0]")
	assert.Contains(t, err.Error(), "entries[1]")

	summary, err := app.Timesheets.SummarizePeriod(context.Background(), periodAll())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalHours)
}

func TestSubmitCmd_RequiresFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "submit")
	require.Error(t, err)
}

// --- gaps / summary ---

func TestGapsCmd_ShrinksAfterLogging(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	out, err := executeCmd(t, app, "gaps")
	require.NoError(t, err)
	assert.Contains(t, out, "10 missing")

	_, err = executeCmd(t, app, "log", "--project", "Apollo", "--date", "2025-03-05", "--hours", "half day")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "gaps")
	require.NoError(t, err)
	assert.Contains(t, out, "9 missing")
}

func TestGapsCmd_UnknownEmployee(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	_, err := executeCmd(t, app, "gaps", "-e", "E404")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSummaryCmd_Daily(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)
	_, err := executeCmd(t, app, "log", "--project", "Apollo", "--date", "2025-03-03", "--hours", "3.8")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "summary", "--daily")
	require.NoError(t, err)
	assert.Contains(t, out, "Mon 2025-03-03")
	assert.Contains(t, out, "3.80/7.60h")
	assert.Contains(t, out, "0.00/7.60h")
}

func TestSummaryCmd_Empty(t *testing.T) {
	app := testApp(t)
	seedReference(t, app)

	out, err := executeCmd(t, app, "summary", "--days", "13")
	require.NoError(t, err)
	assert.Contains(t, out, "No hours logged")
	assert.Contains(t, out, "2025-02-22 → 2025-03-07")
}

func TestFillCmd_RequiresTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "fill")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
