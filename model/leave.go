// model/leave.go
package model

import "time"

// Leave request lifecycle states as reported by the HR platform.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
	LeaveStatusCancelled = "cancelled"
)

type LeaveRequest struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartOn    string    `json:"start_on"`
	FinishOn   string    `json:"finish_on"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	ApprovedBy *int64    `json:"approved_by,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// LeaveFilter narrows list queries; nil fields are not sent upstream.
type LeaveFilter struct {
	EmployeeID *int64  `form:"employee_id" json:"employee_id,omitempty"`
	Status     *string `form:"status" json:"status,omitempty"`
	Limit      *int    `form:"limit" json:"limit,omitempty"`
	Offset     *int    `form:"offset" json:"offset,omitempty"`
}

func (f LeaveFilter) Params() map[string]any {
	params := map[string]any{}
	if f.EmployeeID != nil {
		params["employee_id"] = *f.EmployeeID
	}
	if f.Status != nil {
		params["status"] = *f.Status
	}
	if f.Limit != nil {
		params["limit"] = *f.Limit
	}
	if f.Offset != nil {
		params["offset"] = *f.Offset
	}
	return params
}

type CreateLeavePayload struct {
	EmployeeID int64  `json:"employee_id" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartOn    string `json:"start_on" binding:"required"`
	FinishOn   string `json:"finish_on" binding:"required"`
	Reason     string `json:"reason,omitempty"`
}

type RejectLeavePayload struct {
	Reason string `json:"reason" binding:"required"`
}
