package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/db"
	"github.com/alexanderramin/timesheets/internal/importer"
	"github.com/alexanderramin/timesheets/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadReferenceSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates, converts and inserts the reference data in a
// single transaction: either every record is created or none is.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ReferenceSchema) (result *app.ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import-reference", time.Now(), fields, &err)

	if errs := importer.ValidateReferenceSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	ref, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		employees := repository.NewSQLiteEmployeeRepo(tx)
		projects := repository.NewSQLiteProjectRepo(tx)
		assignments := repository.NewSQLiteAssignmentRepo(tx)

		for _, e := range ref.Employees {
			if err := employees.Create(ctx, e); err != nil {
				return fmt.Errorf("creating employee %q: %w", e.ID, err)
			}
		}
		for _, p := range ref.Projects {
			if err := projects.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", p.Name, err)
			}
		}
		for _, a := range ref.Assignments {
			if err := assignments.Create(ctx, a); err != nil {
				return fmt.Errorf("creating assignment %s/%s: %w", a.EmployeeID, a.ProjectID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		Employees:   len(ref.Employees),
		Projects:    len(ref.Projects),
		Assignments: len(ref.Assignments),
	}
	fields["employees"] = result.Employees
	fields["projects"] = result.Projects
	fields["assignments"] = result.Assignments
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
