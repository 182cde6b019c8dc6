package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timesheets/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newEmployeesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Directory.ListEmployees(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEmployees(employees))
			return nil
		},
	}
}

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Directory.ListProjects(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjects(projects))
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import employees, projects and assignments from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := app.importReferenceUseCase()
			if uc == nil {
				return fmt.Errorf("import use case is not configured")
			}
			result, err := uc.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}
}
