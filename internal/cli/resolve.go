package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tsapp "github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resolveEmployee returns the --employee flag, falling back to the
// configured default employee.
func resolveEmployee(cmd *cobra.Command, app *App) (string, error) {
	if f := cmd.Flag("employee"); f != nil {
		if v := strings.TrimSpace(f.Value.String()); v != "" {
			return v, nil
		}
	}
	if app.DefaultEmployee != "" {
		return app.DefaultEmployee, nil
	}
	return "", fmt.Errorf("no employee given: pass --employee or set default_employee in the config")
}

// resolveProjectID accepts a project ID or name and returns the ID.
func resolveProjectID(ctx context.Context, app *App, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("project is required")
	}
	p, err := app.Directory.ResolveProject(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("resolving project %q: %w", ref, err)
	}
	return p.ID, nil
}

// projectNames maps project IDs to names for display. A lookup failure only
// degrades output to raw IDs.
func projectNames(ctx context.Context, app *App) map[string]string {
	names := make(map[string]string)
	if app.Directory == nil {
		return names
	}
	projects, err := app.Directory.ListProjects(ctx)
	if err != nil {
		return names
	}
	for _, p := range projects {
		names[p.ID] = p.DisplayName()
	}
	return names
}

// dateFlag is a pflag.Value holding an optional YYYY-MM-DD day.
type dateFlag struct {
	day *time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func (d *dateFlag) String() string {
	if d.day == nil {
		return ""
	}
	return calendar.FormatDate(*d.day)
}

func (d *dateFlag) Set(s string) error {
	t, err := calendar.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	d.day = &t
	return nil
}

func (d *dateFlag) Type() string { return "date" }

// rangeFlags are the shared flags selecting a date range. Precedence matches
// calendar.RangeSpec: --from/--to, then --days, then --ahead. With none set
// the configured lookback applies.
type rangeFlags struct {
	from, to, date dateFlag
	days, ahead    int
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.from, "from", "Range start (YYYY-MM-DD)")
	cmd.Flags().Var(&f.to, "to", "Range end (YYYY-MM-DD)")
	cmd.Flags().Var(&f.date, "date", "Reference date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&f.days, "days", -1, "Look back N days from the reference date")
	cmd.Flags().IntVar(&f.ahead, "ahead", -1, "Look ahead N days from the reference date")
}

func (f *rangeFlags) request(app *App) tsapp.RangeRequest {
	req := tsapp.RangeRequest{Start: f.from.day, End: f.to.day}
	if f.date.day != nil {
		req.Reference = *f.date.day
	}
	if req.Start != nil || req.End != nil {
		return req
	}

	switch {
	case f.days >= 0:
		req.LookbackDays = &f.days
	case f.ahead >= 0:
		req.LookaheadDays = &f.ahead
	default:
		back := app.LookbackDays
		req.LookbackDays = &back
	}
	return req
}

// workdayRange resolves the flags through the calendar service.
func (f *rangeFlags) workdayRange(ctx context.Context, app *App) (calendar.WorkdayRange, error) {
	req := f.request(app)
	if req.Reference.IsZero() {
		req.Reference = app.now()
	}
	return app.Calendar.WorkdayRange(ctx, req)
}
