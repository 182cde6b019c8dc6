package cli

import (
	"context"
	"errors"
	"fmt"

	tsapp "github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/cli/formatter"
	"github.com/alexanderramin/timesheets/internal/importer"
	"github.com/spf13/cobra"
)

func newSubmitCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a batch of entries from a JSON file",
		Long: `Submit a batch of entries from a JSON file. Every entry is checked on its
own; accepted entries are stored and rejected ones are reported with a reason.

  {
    "employee_id": "E001",
    "entries": [
      {"project": "apollo", "date": "2025-03-03", "hours": 3.8},
      {"project": "P002",   "date": "2025-03-03", "hours": "half day"}
    ]
  }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			reqs, err := loadEntryRequests(ctx, cmd, app, file)
			if err != nil {
				return err
			}

			uc := app.submitEntriesUseCase()
			if uc == nil {
				return fmt.Errorf("submit-entries use case is not configured")
			}
			results, err := uc.SubmitEntries(ctx, reqs)
			if len(results) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntryResults(results, projectNames(ctx, app)))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the entry batch JSON file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// loadEntryRequests reads an entry batch, validates its shape and resolves
// project names and hour keywords into requests. Problems are collected
// across all entries before returning.
func loadEntryRequests(ctx context.Context, cmd *cobra.Command, app *App, path string) ([]tsapp.EntryRequest, error) {
	batch, err := importer.LoadEntryBatch(path)
	if err != nil {
		return nil, err
	}
	if batch.EmployeeID == "" {
		if employeeID, err := resolveEmployee(cmd, app); err == nil {
			batch.EmployeeID = employeeID
		}
	}
	if errs := importer.ValidateEntryBatch(batch); len(errs) > 0 {
		return nil, fmt.Errorf("entry file is invalid:\n%w", errors.Join(errs...))
	}

	parsed, err := importer.ConvertEntries(batch)
	if err != nil {
		return nil, err
	}

	var errs []error
	reqs := make([]tsapp.EntryRequest, 0, len(parsed))
	for i, p := range parsed {
		hours, err := parseHours(p.HoursText, app.Rules)
		if err != nil {
			errs = append(errs, fmt.Errorf("entries[%d]: %w", i, err))
			continue
		}
		projectID, err := resolveProjectID(ctx, app, p.Project)
		if err != nil {
			errs = append(errs, fmt.Errorf("entries[%d]: %w", i, err))
			continue
		}
		reqs = append(reqs, tsapp.EntryRequest{
			EmployeeID: p.EmployeeID,
			ProjectID:  projectID,
			Date:       p.Date,
			Hours:      hours,
			Note:       p.Note,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reqs, nil
}
