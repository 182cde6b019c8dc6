package cli

import (
	"context"
	"fmt"
	"strings"

	tsapp "github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// logFormFields holds the raw values collected by the log form or flags.
type logFormFields struct {
	date    string
	project string
	hours   string
	note    string
}

func newLogCmd(app *App) *cobra.Command {
	var fields logFormFields
	var interactive bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log hours for one project on one day",
		Example: `  timesheets log --project apollo --hours 3.8
  timesheets log --project P001 --date 2025-03-03 --hours "full day" --note "release"
  timesheets log --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			employeeID, err := resolveEmployee(cmd, app)
			if err != nil {
				return err
			}
			if fields.date == "" {
				fields.date = calendar.FormatDate(app.now())
			}

			missing := fields.project == "" || fields.hours == ""
			if interactive || (missing && app.interactive()) {
				form, err := logForm(ctx, app, employeeID, &fields)
				if err != nil {
					return err
				}
				if err := form.Run(); err != nil {
					return err
				}
			} else if missing {
				return fmt.Errorf("--project and --hours are required (or use --interactive)")
			}

			results, err := applyLogForm(ctx, app, employeeID, fields)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntryResults(results, projectNames(ctx, app)))
			if !results[0].Inserted() {
				return fmt.Errorf("entry rejected: %s", results[0].Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fields.project, "project", "p", "", "Project ID or name")
	cmd.Flags().StringVarP(&fields.date, "date", "d", "", "Date worked (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&fields.hours, "hours", "", `Hours worked, or "full day" / "half day"`)
	cmd.Flags().StringVarP(&fields.note, "note", "n", "", "Optional note")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the entry with a form")

	return cmd
}

// logForm builds the interactive entry form, pre-filled from fields. Project
// choices are the employee's assignments around the pre-filled date.
func logForm(ctx context.Context, app *App, employeeID string, fields *logFormFields) (*huh.Form, error) {
	assignments, err := app.Assignments.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	projects, err := app.Directory.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 && len(projects) == 0 {
		return nil, fmt.Errorf("no projects on file: run 'timesheets import' first")
	}

	return huh.NewForm(
		huh.NewGroup(
			dateInput("Date worked", &fields.date),
			projectSelect(assignments, projects, &fields.project),
		),
		huh.NewGroup(
			hoursInput(app.Rules, &fields.hours),
			huh.NewInput().
				Title("Note (optional)").
				Value(&fields.note),
		),
	).WithTheme(huhTheme()).WithShowHelp(false), nil
}

// applyLogForm converts the collected fields into a single-entry submission.
func applyLogForm(ctx context.Context, app *App, employeeID string, fields logFormFields) ([]tsapp.EntryResult, error) {
	date, err := calendar.ParseDate(strings.TrimSpace(fields.date))
	if err != nil {
		return nil, err
	}
	hours, err := parseHours(fields.hours, app.Rules)
	if err != nil {
		return nil, err
	}
	projectID, err := resolveProjectID(ctx, app, fields.project)
	if err != nil {
		return nil, err
	}

	uc := app.submitEntriesUseCase()
	if uc == nil {
		return nil, fmt.Errorf("submit-entries use case is not configured")
	}
	return uc.SubmitEntries(ctx, []tsapp.EntryRequest{{
		EmployeeID: employeeID,
		ProjectID:  projectID,
		Date:       date,
		Hours:      hours,
		Note:       fields.note,
	}})
}
