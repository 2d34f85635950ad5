package auth

const (
	PermEmployeesRead    = "core.employees.read"
	PermEmployeesWrite   = "core.employees.write"
	PermOrgRead          = "core.org.read"
	PermOrgWrite         = "core.org.write"
	PermEvaluationsRead  = "evaluations.read"
	PermEvaluationsWrite = "evaluations.write"
	PermEvaluationsReset = "evaluations.reset"
	PermReportsRead      = "reports.read"
	PermAuditRead        = "audit.read"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermOrgRead,
	PermOrgWrite,
	PermEvaluationsRead,
	PermEvaluationsWrite,
	PermEvaluationsReset,
	PermReportsRead,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermOrgRead,
	},
	RoleCoordinator: {
		PermEmployeesRead,
		PermOrgRead,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermReportsRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermOrgRead,
		PermOrgWrite,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermReportsRead,
	},
	RoleAdmin: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermOrgRead,
		PermOrgWrite,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermEvaluationsReset,
		PermReportsRead,
		PermAuditRead,
	},
}
