package models

// Role decides which dashboard a user lands on and which routes they may open.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHOD      Role = "hod"
	RoleDriver   Role = "driver"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the four recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHOD, RoleDriver, RoleEmployee:
		return true
	default:
		return false
	}
}

// DashboardPath is where a freshly logged-in user of this role is redirected.
func (r Role) DashboardPath() string {
	return "/" + string(r) + "/dashboard"
}
