package evaluation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrm/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// ListRecords returns every evaluation of the tenant with the evaluated
// employee's department ids resolved to names, oldest first.
func (s *Store) ListRecords(ctx context.Context, tenantID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ev.id,
           ev.employee_id,
           TRIM(e.first_name || ' ' || e.last_name),
           COALESCE(ev.evaluator_id::text, ''),
           ev.evaluation_date,
           ev.final_score,
           COALESCE(ARRAY(
             SELECT d.name
             FROM employee_departments ed
             JOIN departments d ON d.id = ed.department_id
             WHERE ed.employee_id = e.id
             ORDER BY ed.position
           ), '{}'),
           COALESCE(p.name, '')
    FROM evaluations ev
    JOIN employees e ON e.id = ev.employee_id
    LEFT JOIN positions p ON p.id = e.position_id
    WHERE ev.tenant_id = $1
    ORDER BY ev.evaluation_date, ev.created_at
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var date time.Time
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.EvaluatorID, &date, &r.FinalScore, &r.EmployeeDepartments, &r.PositionName); err != nil {
			return nil, err
		}
		r.Date = date
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) ListDepartmentNames(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT name FROM departments WHERE tenant_id = $1 ORDER BY name", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) CreateEvaluation(ctx context.Context, tenantID string, submission Submission) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluations (tenant_id, employee_id, evaluator_id, evaluation_date, final_score)
    VALUES ($1,$2,NULLIF($3,'')::uuid,$4,$5)
    RETURNING id
  `, tenantID, submission.EmployeeID, submission.EvaluatorID, submission.Date, submission.FinalScore).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ResetEvaluations(ctx context.Context, tenantID string) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluations WHERE tenant_id = $1", tenantID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CoordinatorDepartment returns the name of the first department of the
// employee linked to userID, or "" when the user has none.
func (s *Store) CoordinatorDepartment(ctx context.Context, tenantID, userID string) (string, error) {
	var name string
	if err := s.DB.QueryRow(ctx, `
    SELECT d.name
    FROM employees e
    JOIN employee_departments ed ON ed.employee_id = e.id
    JOIN departments d ON d.id = ed.department_id
    WHERE e.tenant_id = $1 AND e.user_id = $2
    ORDER BY ed.position
    LIMIT 1
  `, tenantID, userID).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return name, nil
}

// EmployeeDepartments returns the department names of employeeID in link order.
func (s *Store) EmployeeDepartments(ctx context.Context, tenantID, employeeID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.name
    FROM employee_departments ed
    JOIN employees e ON e.id = ed.employee_id
    JOIN departments d ON d.id = ed.department_id
    WHERE e.tenant_id = $1 AND e.id = $2
    ORDER BY ed.position
  `, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *Store) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	var employeeID string
	if err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE tenant_id = $1 AND user_id = $2", tenantID, userID).Scan(&employeeID); err != nil {
		return "", err
	}
	return employeeID, nil
}
