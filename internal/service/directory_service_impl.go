package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/timesheets/internal/domain"
	"github.com/alexanderramin/timesheets/internal/repository"
)

type directoryService struct {
	employees repository.EmployeeRepo
	projects  repository.ProjectRepo
}

func NewDirectoryService(employees repository.EmployeeRepo, projects repository.ProjectRepo) DirectoryService {
	return &directoryService{employees: employees, projects: projects}
}

func (s *directoryService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *directoryService) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *directoryService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *directoryService) ResolveProject(ctx context.Context, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	p, err := s.projects.GetByID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.projects.GetByName(ctx, ref)
}
