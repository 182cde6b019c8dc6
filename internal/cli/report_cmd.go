package cli

import (
	"context"
	"fmt"

	tsapp "github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/cli/formatter"
	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/spf13/cobra"
)

func newAssignmentsCmd(app *App) *cobra.Command {
	var rf rangeFlags
	var all bool

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "List project assignments active in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			employeeID, err := resolveEmployee(cmd, app)
			if err != nil {
				return err
			}

			var list []*domain.Assignment
			if all {
				list, err = app.Assignments.ListByEmployee(ctx, employeeID)
			} else {
				rng, rerr := rf.workdayRange(ctx, app)
				if rerr != nil {
					return rerr
				}
				list, err = app.Assignments.ActiveAssignments(ctx, tsapp.PeriodRequest{
					EmployeeID: employeeID, Start: rng.Start, End: rng.End,
				})
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssignments(list))
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "List every assignment regardless of dates")
	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	var rf rangeFlags
	var daily bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize logged hours per project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			employeeID, err := resolveEmployee(cmd, app)
			if err != nil {
				return err
			}
			rng, err := rf.workdayRange(ctx, app)
			if err != nil {
				return err
			}
			req := tsapp.PeriodRequest{EmployeeID: employeeID, Start: rng.Start, End: rng.End}

			summary, err := app.Timesheets.SummarizePeriod(ctx, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSummary(summary))

			if daily {
				entries, err := app.Timesheets.ListEntries(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatDailyFill(rng.Workdays, entries, app.Rules.DailyCapHours))
			}
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().BoolVar(&daily, "daily", false, "Also show how full each workday is")
	return cmd
}

func newGapsCmd(app *App) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "List workdays with an active assignment but no entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			employeeID, err := resolveEmployee(cmd, app)
			if err != nil {
				return err
			}
			rng, err := rf.workdayRange(ctx, app)
			if err != nil {
				return err
			}
			report, err := app.Timesheets.FindMissingEntries(ctx, employeeID, rng)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGaps(report))
			return nil
		},
	}
	rf.register(cmd)
	return cmd
}
