package core

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	departments []Department
	positions   []Position
	created     []Employee
}

func (f *fakeStore) ListDepartments(context.Context, string) ([]Department, error) {
	return f.departments, nil
}

func (f *fakeStore) CreateDepartment(_ context.Context, _ string, name string) (string, error) {
	f.departments = append(f.departments, Department{ID: name, Name: name})
	return name, nil
}

func (f *fakeStore) ListPositions(context.Context, string) ([]Position, error) {
	return f.positions, nil
}

func (f *fakeStore) CreatePosition(_ context.Context, _ string, name string) (string, error) {
	f.positions = append(f.positions, Position{ID: name, Name: name})
	return name, nil
}

func (f *fakeStore) ListEmployees(context.Context, string, string) ([]Employee, error) {
	return f.created, nil
}

func (f *fakeStore) CreateEmployee(_ context.Context, _ string, emp Employee) (string, error) {
	f.created = append(f.created, emp)
	return "e1", nil
}

func TestListDepartmentsAnnotatesRegime(t *testing.T) {
	store := &fakeStore{departments: []Department{
		{Name: "Elementary"},
		{Name: "Senior High School"},
		{Name: "Finance"},
	}}
	deps, err := NewService(store).ListDepartments(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"quarter", "semester", "unclassified"}
	for i, dep := range deps {
		if dep.Regime != want[i] {
			t.Fatalf("department %q: expected regime %s, got %s", dep.Name, want[i], dep.Regime)
		}
	}
}

func TestListPositionsFlagsAssistants(t *testing.T) {
	store := &fakeStore{positions: []Position{{Name: "Teacher Assistant"}, {Name: "Teacher"}}}
	positions, err := NewService(store).ListPositions(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !positions[0].IsAssistant || positions[1].IsAssistant {
		t.Fatalf("unexpected assistant flags: %+v", positions)
	}
}

func TestCreateDepartmentRequiresName(t *testing.T) {
	_, err := NewService(&fakeStore{}).CreateDepartment(context.Background(), "t1", "   ")
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
}

func TestCreateEmployeeRejectsFourDepartments(t *testing.T) {
	store := &fakeStore{}
	_, err := NewService(store).CreateEmployee(context.Background(), "t1", Employee{
		FirstName:     "Ana",
		LastName:      "Cruz",
		DepartmentIDs: []string{"d1", "d2", "d3", "d4"},
	})
	if !errors.Is(err, ErrTooManyDepartments) {
		t.Fatalf("expected too many departments, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatal("employee must not be stored")
	}
}

func TestCreateEmployeeRejectsDuplicateDepartment(t *testing.T) {
	_, err := NewService(&fakeStore{}).CreateEmployee(context.Background(), "t1", Employee{
		FirstName:     "Ana",
		LastName:      "Cruz",
		DepartmentIDs: []string{"d1", "d1"},
	})
	if !errors.Is(err, ErrDuplicateDepartment) {
		t.Fatalf("expected duplicate department, got %v", err)
	}
}

func TestCreateEmployeeNormalizes(t *testing.T) {
	store := &fakeStore{}
	if _, err := NewService(store).CreateEmployee(context.Background(), "t1", Employee{
		FirstName:     " Ana ",
		LastName:      "Cruz",
		DepartmentIDs: []string{"d1", "d2", "d3"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := store.created[0]
	if got.FirstName != "Ana" || got.Status != EmployeeStatusActive {
		t.Fatalf("unexpected normalized employee: %+v", got)
	}
	if got.FullName() != "Ana Cruz" {
		t.Fatalf("unexpected full name %q", got.FullName())
	}
}
