package leave

import (
	"strconv"

	"emsconsole/internal/gateway"
	"emsconsole/internal/validation"
)

type Leave = gateway.Leave

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"

	MsgApplyFailed      = "Error applying leave."
	MsgUpdateFailed     = "Error updating leave."
	MsgTypeCreateFailed = "Error creating leave types."
	MsgTypeUpdateFailed = "Error updating leave types."
	MsgTypeDeleteFailed = "Error deleting leave type."
)

// HistoryEntry is one row of an employee's own leave history.
type HistoryEntry struct {
	Leave
	Days float64 `json:"days"`
}

// EditView is what the admin edit screen loads before rendering.
type EditView struct {
	Leave      Leave               `json:"leave"`
	LeaveTypes []gateway.LeaveType `json:"leaveTypes"`
	Statuses   []string            `json:"statuses"`
}

func TypeValues(in gateway.LeaveTypeInput) validation.Values {
	return validation.Values{"leaveType": in.LeaveType, "description": in.Description}
}

func Values(in gateway.LeaveInput) validation.Values {
	return validation.Values{
		"leaveTypeId": strconv.FormatInt(in.LeaveTypeID, 10),
		"fromDate":    in.FromDate,
		"toDate":      in.ToDate,
		"description": in.Description,
		"status":      in.Status,
	}
}
