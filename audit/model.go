// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// AuditLog records one executed (or cancelled) mutation against the HR
// platform. Confirmed high-risk operations always leave a trail.
type AuditLog struct {
	Timestamp  time.Time       `json:"timestamp"`
	Operation  string          `json:"operation"`
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id,omitempty"`
	Confirmed  bool            `json:"confirmed"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}
