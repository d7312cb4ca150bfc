// model/preview.go
package model

import "time"

// FieldChange captures a before/after pair for one field of a mutation
// preview. From is omitted for creations.
type FieldChange struct {
	From any `json:"from,omitempty"`
	To   any `json:"to,omitempty"`
}

// OperationPreview is the human-facing description of a pending high-risk
// operation. It is immutable once attached to a pending confirmation.
type OperationPreview struct {
	Operation         string                 `json:"operation"` // create|update|delete|terminate|approve|reject|archive
	EntityType        string                 `json:"entity_type"`
	EntityID          *int64                 `json:"entity_id,omitempty"`
	EntityName        string                 `json:"entity_name,omitempty"`
	Changes           map[string]FieldChange `json:"changes,omitempty"`
	Warnings          []string               `json:"warnings"`
	ConfirmationToken string                 `json:"confirmation_token"`
	ExpiresAt         time.Time              `json:"expires_at"`
}

// OperationEvent is published on the event bus after a mutation executes,
// and feeds the audit trail.
type OperationEvent struct {
	Operation  string         `json:"operation"`
	EntityType string         `json:"entity_type"`
	EntityID   int64          `json:"entity_id,omitempty"`
	Confirmed  bool           `json:"confirmed"`
	Payload    map[string]any `json:"payload,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
