package gateway

import "encoding/json"

type User struct {
	ID           int64  `json:"id,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsFirstLogin bool   `json:"isFirstLogin"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ChangePasswordRequest struct {
	Email           string `json:"email,omitempty"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Ack is the body of operations that only confirm success.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Enums struct {
	Departments []string `json:"departments"`
	Positions   []string `json:"positions"`
	Statuses    []string `json:"statuses"`
}

type DashboardCards struct {
	TotalEmployees   int     `json:"totalEmployees"`
	ActiveEmployees  int     `json:"activeEmployees"`
	Departments      int     `json:"departments"`
	ThisMonthPayroll float64 `json:"thisMonthPayroll"`
}

type PersonalInfo struct {
	FatherName    string `json:"fatherName,omitempty"`
	FatherContact string `json:"fatherContact,omitempty"`
	MotherName    string `json:"motherName,omitempty"`
	MotherContact string `json:"motherContact,omitempty"`
	Address       string `json:"address,omitempty"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
}

type EducationInfo struct {
	UDegree     string  `json:"uDegree,omitempty"`
	UCollege    string  `json:"uCollege,omitempty"`
	UYear       string  `json:"uYear,omitempty"`
	UCGPA       float64 `json:"uCGPA,omitempty"`
	PDegree     string  `json:"pDegree,omitempty"`
	PCollege    string  `json:"pCollege,omitempty"`
	PYear       string  `json:"pYear,omitempty"`
	PCGPA       float64 `json:"pCGPA,omitempty"`
	PhdResearch string  `json:"phdResearch,omitempty"`
	PhdCollege  string  `json:"phdCollege,omitempty"`
	PhdYear     string  `json:"phdYear,omitempty"`
	PhdResult   string  `json:"phdResult,omitempty"`
}

type Employee struct {
	ID            int64          `json:"id"`
	EmployeeCode  string         `json:"employeeCode"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	JoiningDate   string         `json:"joiningDate"`
	ContactNumber string         `json:"contactNumber"`
	Department    string         `json:"department"`
	Position      string         `json:"position"`
	Status        string         `json:"status"`
	Role          string         `json:"role,omitempty"`
	PersonalInfo  *PersonalInfo  `json:"personalInfo,omitempty"`
	EducationInfo *EducationInfo `json:"educationInfo,omitempty"`
}

type EmployeeInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	JoiningDate   string `json:"joiningDate"`
	ContactNumber string `json:"contactNumber"`
	Department    string `json:"department"`
	Position      string `json:"position"`
	Status        string `json:"status"`
}

type BasicInfo struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
}

type EmployeePage struct {
	Employees  []Employee `json:"employees"`
	TotalPages int        `json:"totalPages"`
}

type LeaveType struct {
	ID          int64  `json:"id"`
	LeaveType   string `json:"leaveType"`
	Description string `json:"description"`
}

type LeaveTypeInput struct {
	LeaveType   string `json:"leaveType"`
	Description string `json:"description"`
}

type LeaveEmployee struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmployeeCode string `json:"employeeCode"`
	Email        string `json:"email"`
}

type Leave struct {
	ID          int64          `json:"id"`
	LeaveTypeID int64          `json:"leaveTypeId,omitempty"`
	LeaveType   LeaveType      `json:"leaveType"`
	FromDate    string         `json:"fromDate"`
	ToDate      string         `json:"toDate"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	Employee    *LeaveEmployee `json:"employee,omitempty"`
}

type LeaveInput struct {
	LeaveTypeID int64  `json:"leaveTypeId"`
	FromDate    string `json:"fromDate"`
	ToDate      string `json:"toDate"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

type LeavePage struct {
	Leaves     []Leave `json:"leaves"`
	TotalPages int     `json:"totalPages"`
}

type PayrollEmployee struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	EmployeeCode string `json:"employeeCode,omitempty"`
	Position     string `json:"position,omitempty"`
}

type Payroll struct {
	ID            int64           `json:"id"`
	EmployeeID    int64           `json:"employeeId,omitempty"`
	Employee      PayrollEmployee `json:"employee"`
	Month         string          `json:"month,omitempty"`
	BasicSalary   float64         `json:"basicSalary"`
	Allowance     float64         `json:"allowance"`
	Deduction     float64         `json:"deduction"`
	NetSalary     float64         `json:"netSalary"`
	PayrollStatus string          `json:"payrollStatus"`
	CreatedAt     string          `json:"createdAt"`
}

type ProcessPayrollRequest struct {
	EmployeeID string `json:"employeeId"`
	Month      string `json:"month"`
}

type PayrollPage struct {
	Payrolls   []Payroll `json:"payrolls"`
	TotalPages int       `json:"totalPages"`
}

// PayrollRecord accepts either a single object or a one-element list, both
// of which the per-employee payroll endpoint returns.
type PayrollRecord struct {
	Payroll
}

func (p *PayrollRecord) UnmarshalJSON(data []byte) error {
	var list []Payroll
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			p.Payroll = list[0]
		}
		return nil
	}
	return json.Unmarshal(data, &p.Payroll)
}

// Slip is a downloaded salary slip document.
type Slip struct {
	Name        string
	ContentType string
	Data        []byte
}
