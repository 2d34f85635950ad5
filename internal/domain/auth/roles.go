package auth

const (
	RoleAdmin       = "Admin"
	RoleHR          = "HR"
	RoleCoordinator = "Coordinator"
	RoleEmployee    = "Employee"

	UserStatusActive = "active"
)

type UserContext struct {
	UserID   string
	TenantID string
	RoleID   string
	RoleName string
}
