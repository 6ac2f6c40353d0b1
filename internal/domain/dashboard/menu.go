package dashboard

import "emsconsole/internal/domain/session"

type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var (
	adminMenu = []MenuItem{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Employees", Path: "/employees"},
		{Label: "Leaves Types", Path: "/leave-types"},
		{Label: "Leaves Management", Path: "/leaves"},
		{Label: "Payroll", Path: "/payroll"},
	}
	employeeMenu = []MenuItem{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "My Profile", Path: "/profile"},
		{Label: "Leave", Path: "/leave"},
		{Label: "Payroll", Path: "/payroll"},
	}
)

// Menu returns the sidebar entries for role.
func Menu(role string) []MenuItem {
	src := employeeMenu
	if role == session.RoleAdmin {
		src = adminMenu
	}
	out := make([]MenuItem, len(src))
	copy(out, src)
	return out
}
