// model/team.go
package model

import "time"

type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LeadID      *int64    `json:"lead_id,omitempty"`
	MemberCount int       `json:"member_count,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

type CreateTeamPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	LeadID      *int64 `json:"lead_id,omitempty"`
}

type UpdateTeamPayload struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	LeadID      *int64  `json:"lead_id,omitempty"`
}

type AssignEmployeePayload struct {
	EmployeeID int64 `json:"employee_id" binding:"required"`
}
