// model/employee.go
package model

import "time"

type Employee struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role,omitempty"`
	TeamID       *int64    `json:"team_id,omitempty"`
	LocationID   *int64    `json:"location_id,omitempty"`
	ManagerID    *int64    `json:"manager_id,omitempty"`
	HiredOn      string    `json:"hired_on,omitempty"`
	TerminatedOn *string   `json:"terminated_on,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// EmployeeFilter narrows list queries; nil fields are not sent upstream.
// Limit and Offset page through upstream results.
type EmployeeFilter struct {
	TeamID     *int64 `form:"team_id" json:"team_id,omitempty"`
	LocationID *int64 `form:"location_id" json:"location_id,omitempty"`
	Active     *bool  `form:"active" json:"active,omitempty"`
	Limit      *int   `form:"limit" json:"limit,omitempty"`
	Offset     *int   `form:"offset" json:"offset,omitempty"`
}

// Params renders the filter as cache-key / query parameters. Nil fields
// are dropped so equivalent filters produce identical keys.
func (f EmployeeFilter) Params() map[string]any {
	params := map[string]any{}
	if f.TeamID != nil {
		params["team_id"] = *f.TeamID
	}
	if f.LocationID != nil {
		params["location_id"] = *f.LocationID
	}
	if f.Active != nil {
		params["active"] = *f.Active
	}
	if f.Limit != nil {
		params["limit"] = *f.Limit
	}
	if f.Offset != nil {
		params["offset"] = *f.Offset
	}
	return params
}

type CreateEmployeePayload struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role,omitempty"`
	TeamID     *int64 `json:"team_id,omitempty"`
	LocationID *int64 `json:"location_id,omitempty"`
	HiredOn    string `json:"hired_on,omitempty"`
}

type UpdateEmployeePayload struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	TeamID     *int64  `json:"team_id,omitempty"`
	LocationID *int64  `json:"location_id,omitempty"`
}

type TerminateEmployeePayload struct {
	TerminatedOn      string `json:"terminated_on" binding:"required"`
	TerminationReason string `json:"termination_reason,omitempty"`
}
