package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timesheets/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRangeCmd(app *App) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show the workdays in a date range",
		Example: `  timesheets range                 # the configured lookback ending today
  timesheets range --days 13
  timesheets range --ahead 4 --date 2025-03-03
  timesheets range --from 2025-03-01 --to 2025-03-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := rf.workdayRange(context.Background(), app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRange(rng))
			return nil
		},
	}
	rf.register(cmd)
	return cmd
}
