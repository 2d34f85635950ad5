package evaluation

import "context"

type StoreAPI interface {
	ListRecords(ctx context.Context, tenantID string) ([]Record, error)
	ListDepartmentNames(ctx context.Context, tenantID string) ([]string, error)
	CreateEvaluation(ctx context.Context, tenantID string, submission Submission) (string, error)
	ResetEvaluations(ctx context.Context, tenantID string) (int64, error)
	CoordinatorDepartment(ctx context.Context, tenantID, userID string) (string, error)
	EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error)
	EmployeeDepartments(ctx context.Context, tenantID, employeeID string) ([]string, error)
}
