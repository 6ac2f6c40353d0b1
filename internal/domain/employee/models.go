package employee

import (
	"emsconsole/internal/domain/listing"
	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

const (
	// RecentLimit is how many employees the admin dashboard shows.
	RecentLimit = 2

	MsgCreateFailed = "Error creating employee."
	MsgUpdateFailed = "Error updating employee."
	MsgDeleteFailed = "Error deleting employee."
)

// ListView is the employee list screen: one server page, filtered, plus the
// option sets for the filter dropdowns.
type ListView struct {
	listing.Page[gateway.Employee]
	Enums  gateway.Enums  `json:"enums"`
	Filter listing.Filter `json:"filter"`
}

// EditView is everything the update form needs before it can render.
type EditView struct {
	Employee gateway.Employee `json:"employee"`
	Enums    gateway.Enums    `json:"enums"`
}

func Values(in gateway.EmployeeInput) validation.Values {
	return validation.Values{
		"firstName":     in.FirstName,
		"lastName":      in.LastName,
		"email":         in.Email,
		"joiningDate":   in.JoiningDate,
		"contactNumber": in.ContactNumber,
		"department":    in.Department,
		"position":      in.Position,
		"status":        in.Status,
	}
}

func matches(f listing.Filter, e gateway.Employee) bool {
	return f.MatchDepartment(e.Department) &&
		f.MatchStatus(e.Status) &&
		f.MatchText(e.FirstName, e.LastName, e.Email, e.EmployeeCode)
}
