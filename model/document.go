// model/document.go
package model

import "time"

type Document struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	Filename   string    `json:"filename"`
	Category   string    `json:"category,omitempty"`
	Archived   bool      `json:"archived"`
	SizeBytes  int64     `json:"size_bytes,omitempty"`
	UploadedAt time.Time `json:"uploaded_at,omitempty"`
}

// DocumentFilter narrows list queries; nil fields are not sent upstream.
type DocumentFilter struct {
	EmployeeID *int64  `form:"employee_id" json:"employee_id,omitempty"`
	Category   *string `form:"category" json:"category,omitempty"`
	Limit      *int    `form:"limit" json:"limit,omitempty"`
	Offset     *int    `form:"offset" json:"offset,omitempty"`
}

func (f DocumentFilter) Params() map[string]any {
	params := map[string]any{}
	if f.EmployeeID != nil {
		params["employee_id"] = *f.EmployeeID
	}
	if f.Category != nil {
		params["category"] = *f.Category
	}
	if f.Limit != nil {
		params["limit"] = *f.Limit
	}
	if f.Offset != nil {
		params["offset"] = *f.Offset
	}
	return params
}

type UploadDocumentPayload struct {
	EmployeeID int64  `json:"employee_id" binding:"required"`
	Filename   string `json:"filename" binding:"required"`
	Category   string `json:"category,omitempty"`
	Content    string `json:"content" binding:"required"` // base64-encoded
}
