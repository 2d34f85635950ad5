package core

import (
	"context"
	"strings"

	"hrm/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListDepartments(ctx context.Context, tenantID string) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM departments
    WHERE tenant_id = $1
    ORDER BY name
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var dep Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, tenantID, name string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (tenant_id, name)
    VALUES ($1,$2)
    RETURNING id
  `, tenantID, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListPositions(ctx context.Context, tenantID string) ([]Position, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM positions
    WHERE tenant_id = $1
    ORDER BY name
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		var pos Position
		if err := rows.Scan(&pos.ID, &pos.Name, &pos.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, rows.Err()
}

func (s *Store) CreatePosition(ctx context.Context, tenantID, name string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO positions (tenant_id, name)
    VALUES ($1,$2)
    RETURNING id
  `, tenantID, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListEmployees(ctx context.Context, tenantID, departmentName string) ([]Employee, error) {
	query := `
    SELECT e.id,
           COALESCE(e.user_id::text, ''),
           COALESCE(e.employee_number, ''),
           e.first_name, e.last_name,
           COALESCE(e.email, ''),
           COALESCE(e.position_id::text, ''),
           COALESCE(p.name, ''),
           COALESCE(ARRAY(SELECT ed.department_id::text FROM employee_departments ed WHERE ed.employee_id = e.id ORDER BY ed.position), '{}'),
           COALESCE(ARRAY(SELECT d.name FROM employee_departments ed JOIN departments d ON d.id = ed.department_id WHERE ed.employee_id = e.id ORDER BY ed.position), '{}'),
           e.status, e.created_at
    FROM employees e
    LEFT JOIN positions p ON p.id = e.position_id
    WHERE e.tenant_id = $1
  `
	args := []any{tenantID}
	if name := strings.TrimSpace(departmentName); name != "" {
		query += ` AND EXISTS (
      SELECT 1 FROM employee_departments ed JOIN departments d ON d.id = ed.department_id
      WHERE ed.employee_id = e.id AND d.name = $2
    )`
		args = append(args, name)
	}
	query += " ORDER BY e.last_name, e.first_name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.UserID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
			&emp.PositionID, &emp.PositionName, &emp.DepartmentIDs, &emp.DepartmentNames, &emp.Status, &emp.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

// CreateEmployee inserts the employee and its ordered department links in one statement.
func (s *Store) CreateEmployee(ctx context.Context, tenantID string, emp Employee) (string, error) {
	departmentIDs := emp.DepartmentIDs
	if departmentIDs == nil {
		departmentIDs = []string{}
	}
	var id string
	if err := s.DB.QueryRow(ctx, `
    WITH emp AS (
      INSERT INTO employees (tenant_id, user_id, employee_number, first_name, last_name, email, position_id, status)
      VALUES ($1, $2::uuid, $3, $4, $5, $6, $7::uuid, $8)
      RETURNING id
    ), links AS (
      INSERT INTO employee_departments (employee_id, department_id, position)
      SELECT emp.id, d.id, d.ord
      FROM emp, unnest($9::uuid[]) WITH ORDINALITY AS d(id, ord)
    )
    SELECT id FROM emp
  `, tenantID, nullIfEmpty(emp.UserID), nullIfEmpty(emp.EmployeeNumber), emp.FirstName, emp.LastName, nullIfEmpty(emp.Email),
		nullIfEmpty(emp.PositionID), emp.Status, departmentIDs).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func nullIfEmpty(value string) any {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return value
}
