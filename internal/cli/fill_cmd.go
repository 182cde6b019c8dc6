package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timesheets/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFillCmd(app *App) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Interactively log hours for missing entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("fill needs an interactive terminal; use 'timesheets gaps' and 'timesheets submit' instead")
			}
			employeeID, err := resolveEmployee(cmd, app)
			if err != nil {
				return err
			}
			rng, err := rf.workdayRange(context.Background(), app)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(newFillModel(app, employeeID, rng), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(*fillModel); ok && m.inserted > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render(
					fmt.Sprintf("✔ %d entries logged", m.inserted)))
			}
			return nil
		},
	}
	rf.register(cmd)
	return cmd
}
