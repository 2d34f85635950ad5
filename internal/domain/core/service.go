package core

import (
	"context"
	"errors"
	"strings"

	"hrm/internal/domain/evaluation"
)

const (
	MaxDepartmentsPerEmployee = 3

	EmployeeStatusActive = "active"
)

var (
	ErrNameRequired         = errors.New("name required")
	ErrTooManyDepartments   = errors.New("an employee may belong to at most three departments")
	ErrDuplicateDepartment  = errors.New("department listed more than once")
	ErrEmployeeNameRequired = errors.New("first and last name required")
)

type StoreAPI interface {
	ListDepartments(ctx context.Context, tenantID string) ([]Department, error)
	CreateDepartment(ctx context.Context, tenantID, name string) (string, error)
	ListPositions(ctx context.Context, tenantID string) ([]Position, error)
	CreatePosition(ctx context.Context, tenantID, name string) (string, error)
	ListEmployees(ctx context.Context, tenantID, departmentName string) ([]Employee, error)
	CreateEmployee(ctx context.Context, tenantID string, emp Employee) (string, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// ListDepartments annotates each department with its periodization regime.
func (s *Service) ListDepartments(ctx context.Context, tenantID string) ([]Department, error) {
	departments, err := s.store.ListDepartments(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range departments {
		departments[i].Regime = string(evaluation.RegimeOf(departments[i].Name))
	}
	return departments, nil
}

func (s *Service) CreateDepartment(ctx context.Context, tenantID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return s.store.CreateDepartment(ctx, tenantID, name)
}

func (s *Service) ListPositions(ctx context.Context, tenantID string) ([]Position, error) {
	positions, err := s.store.ListPositions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range positions {
		positions[i].IsAssistant = evaluation.IsAssistant(positions[i].Name)
	}
	return positions, nil
}

func (s *Service) CreatePosition(ctx context.Context, tenantID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return s.store.CreatePosition(ctx, tenantID, name)
}

// ListEmployees lists employees, restricted to departmentName when it is set.
func (s *Service) ListEmployees(ctx context.Context, tenantID, departmentName string) ([]Employee, error) {
	return s.store.ListEmployees(ctx, tenantID, departmentName)
}

func (s *Service) CreateEmployee(ctx context.Context, tenantID string, emp Employee) (string, error) {
	if err := ValidateEmployee(&emp); err != nil {
		return "", err
	}
	return s.store.CreateEmployee(ctx, tenantID, emp)
}

// ValidateEmployee normalizes emp in place and checks the department list.
func ValidateEmployee(emp *Employee) error {
	emp.FirstName = strings.TrimSpace(emp.FirstName)
	emp.LastName = strings.TrimSpace(emp.LastName)
	emp.Email = strings.TrimSpace(emp.Email)
	if emp.FirstName == "" || emp.LastName == "" {
		return ErrEmployeeNameRequired
	}
	if len(emp.DepartmentIDs) > MaxDepartmentsPerEmployee {
		return ErrTooManyDepartments
	}
	seen := map[string]struct{}{}
	for _, id := range emp.DepartmentIDs {
		if _, ok := seen[id]; ok {
			return ErrDuplicateDepartment
		}
		seen[id] = struct{}{}
	}
	if emp.Status == "" {
		emp.Status = EmployeeStatusActive
	}
	return nil
}
