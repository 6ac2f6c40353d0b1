package payroll

import (
	"emsconsole/internal/domain/listing"
	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

const (
	MsgProcessFailed  = "Error processing payroll."
	MsgDownloadFailed = "Failed to download salary slip."
)

// ListView is the admin payroll screen.
type ListView struct {
	listing.Page[gateway.Payroll]
	Departments []string       `json:"departments"`
	Filter      listing.Filter `json:"filter"`
}

// EmployeeOption is one entry of the process-payroll employee dropdown.
type EmployeeOption struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employeeCode"`
	Name         string `json:"name"`
}

// History is an employee's own payroll records with their totals.
type History struct {
	Records []gateway.Payroll `json:"records"`
	Summary Summary           `json:"summary"`
}

func Values(in gateway.ProcessPayrollRequest) validation.Values {
	return validation.Values{"employeeId": in.EmployeeID, "month": in.Month}
}

func matches(f listing.Filter, p gateway.Payroll) bool {
	return f.MatchDepartment(p.Employee.Department) &&
		f.MatchText(p.Employee.FirstName, p.Employee.LastName, p.Employee.Email)
}
