package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/repository"
)

type assignmentService struct {
	employees   repository.EmployeeRepo
	assignments repository.AssignmentRepo
	observer    UseCaseObserver
}

func NewAssignmentService(
	employees repository.EmployeeRepo,
	assignments repository.AssignmentRepo,
	observers ...UseCaseObserver,
) AssignmentService {
	return &assignmentService{
		employees:   employees,
		assignments: assignments,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// ActiveAssignments returns the employee's assignments intersecting the
// period. An unknown employee is an error; no assignments is an empty slice.
func (s *assignmentService) ActiveAssignments(ctx context.Context, req app.PeriodRequest) (active []*domain.Assignment, err error) {
	fields := map[string]any{"employee": req.EmployeeID}
	defer observe(ctx, s.observer, "active-assignments", time.Now(), fields, &err)

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if _, err = s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}
	active, err = s.assignments.ListActive(ctx, req.EmployeeID, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if active == nil {
		active = []*domain.Assignment{}
	}
	fields["count"] = len(active)
	return active, nil
}

func (s *assignmentService) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Assignment, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.assignments.ListByEmployee(ctx, employeeID)
}
