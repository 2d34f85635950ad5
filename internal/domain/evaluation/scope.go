package evaluation

import (
	"strings"

	"hrm/internal/domain/auth"
)

// ScopeTo keeps the records of employees in department. An empty department
// means the viewer is unscoped and records pass through unchanged.
func ScopeTo(records []Record, department string) []Record {
	if department == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if inDepartment(r, department) {
			out = append(out, r)
		}
	}
	return out
}

// ScopeTotals applies the same department restriction to aggregated totals.
// Scoping totals after Aggregate yields what aggregating ScopeTo's output does.
func ScopeTotals(totals []EmployeeTotalScore, department string) []EmployeeTotalScore {
	if department == "" {
		return totals
	}
	return filterTotals(totals, func(t EmployeeTotalScore) bool {
		return hasDepartment(t.Departments, department)
	})
}

func inDepartment(r Record, department string) bool {
	return hasDepartment(r.EmployeeDepartments, department)
}

func hasDepartment(departments []string, department string) bool {
	for _, name := range departments {
		if name == department {
			return true
		}
	}
	return false
}

// View names a screen of the evaluation module.
type View string

const (
	ViewHistory     View = "history"
	ViewTotals      View = "totals"
	ViewEligibility View = "eligibility"
	ViewSubmit      View = "submit"
	ViewReset       View = "reset"
)

type roleAccess struct {
	views  []View
	scoped bool
}

// roleViews is keyed by role name as carried in access tokens.
var roleViews = map[string]roleAccess{
	auth.RoleAdmin:       {views: []View{ViewHistory, ViewTotals, ViewEligibility, ViewSubmit, ViewReset}},
	auth.RoleHR:          {views: []View{ViewHistory, ViewTotals, ViewEligibility, ViewSubmit}},
	auth.RoleCoordinator: {views: []View{ViewHistory, ViewTotals, ViewEligibility, ViewSubmit}, scoped: true},
	auth.RoleEmployee:    {},
}

// Viewer is the already-resolved role and department context of a request.
type Viewer struct {
	Role       string
	Department string
}

// ViewerFor builds the viewer for role. Department is kept only for scoped
// roles and is mandatory for them.
func ViewerFor(role, department string) (Viewer, error) {
	access, ok := roleViews[role]
	if !ok {
		return Viewer{}, ErrUnknownRole
	}
	if !access.scoped {
		return Viewer{Role: role}, nil
	}
	department = strings.TrimSpace(department)
	if department == "" {
		return Viewer{}, ErrScopeRequired
	}
	return Viewer{Role: role, Department: department}, nil
}

func (v Viewer) Scoped() bool {
	return roleViews[v.Role].scoped
}

func (v Viewer) Can(view View) bool {
	for _, allowed := range roleViews[v.Role].views {
		if allowed == view {
			return true
		}
	}
	return false
}

// Scope is the department restriction to apply, empty when unscoped.
func (v Viewer) Scope() string {
	if !v.Scoped() {
		return ""
	}
	return v.Department
}
