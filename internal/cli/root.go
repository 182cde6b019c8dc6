package cli

import (
	"time"

	tsapp "github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/engine"
	"github.com/alexanderramin/timesheets/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Calendar    service.CalendarService
	Assignments service.AssignmentService
	Timesheets  service.TimesheetService
	Directory   service.DirectoryService
	Import      service.ImportService

	// Optional use-case overrides. When nil, the services above are used.
	SubmitEntries   tsapp.SubmitEntriesUseCase
	ImportReference tsapp.ImportReferenceUseCase

	Rules           engine.Rules
	DefaultEmployee string
	LookbackDays    int

	// Now and IsInteractive are injectable for tests; nil means wall clock
	// and "not a terminal".
	Now           func() time.Time
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "timesheets" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timesheets",
		Short:         "Validate timesheet entries and find missing days",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("employee", "e", "", "Employee ID (defaults to default_employee from config)")

	root.AddCommand(
		newRangeCmd(app),
		newAssignmentsCmd(app),
		newSummaryCmd(app),
		newGapsCmd(app),
		newLogCmd(app),
		newSubmitCmd(app),
		newFillCmd(app),
		newImportCmd(app),
		newEmployeesCmd(app),
		newProjectsCmd(app),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
