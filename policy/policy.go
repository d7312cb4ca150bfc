// policy/policy.go

// Package policy is the static risk classification for named operations.
// It is the single source of truth for whether a mutation must pass
// through the confirmation manager before reaching the request pipeline.
package policy

import "time"

type Risk string

const (
	RiskLow      Risk = "low"
	RiskMedium   Risk = "medium"
	RiskHigh     Risk = "high"
	RiskCritical Risk = "critical"
)

type OperationPolicy struct {
	Risk                 Risk          `json:"risk"`
	RequiresConfirmation bool          `json:"requires_confirmation"`
	RequiresPreview      bool          `json:"requires_preview"`
	MaxBatchSize         int           `json:"max_batch_size,omitempty"`
	Cooldown             time.Duration `json:"cooldown,omitempty"`
	ImpactDescription    string        `json:"impact_description,omitempty"`
}

// defaultPolicy applies to operation names the table does not know:
// conservative enough to recommend a preview without forcing a
// confirmation round-trip.
var defaultPolicy = OperationPolicy{
	Risk:            RiskMedium,
	RequiresPreview: true,
}

// policies maps verb_entity operation names to their risk tier. Every
// high/critical entry requires confirmation, and every confirmed entry
// requires a preview; TestPolicyInvariants keeps the table honest.
var policies = map[string]OperationPolicy{
	"create_employee": {
		Risk:            RiskMedium,
		RequiresPreview: true,
	},
	"update_employee": {
		Risk:            RiskMedium,
		RequiresPreview: true,
	},
	"terminate_employee": {
		Risk:                 RiskCritical,
		RequiresConfirmation: true,
		RequiresPreview:      true,
		Cooldown:             30 * time.Second,
		ImpactDescription:    "Ends employment; revokes access and stops payroll accrual.",
	},
	"create_team": {
		Risk: RiskLow,
	},
	"update_team": {
		Risk:            RiskMedium,
		RequiresPreview: true,
	},
	"delete_team": {
		Risk:                 RiskHigh,
		RequiresConfirmation: true,
		RequiresPreview:      true,
		ImpactDescription:    "Removes the team; its members become unassigned.",
	},
	"assign_employee": {
		Risk: RiskLow,
	},
	"create_leave": {
		Risk: RiskLow,
	},
	"approve_leave": {
		Risk:            RiskMedium,
		RequiresPreview: true,
	},
	"reject_leave": {
		Risk:                 RiskHigh,
		RequiresConfirmation: true,
		RequiresPreview:      true,
		ImpactDescription:    "Denies the request; the employee is notified immediately.",
	},
	"cancel_leave": {
		Risk:            RiskMedium,
		RequiresPreview: true,
	},
	"upload_document": {
		Risk:         RiskLow,
		MaxBatchSize: 10,
	},
	"archive_document": {
		Risk:            RiskMedium,
		RequiresPreview: true,
	},
	"delete_document": {
		Risk:                 RiskHigh,
		RequiresConfirmation: true,
		RequiresPreview:      true,
		ImpactDescription:    "Permanently deletes the document from the employee record.",
	},
}

// Lookup returns the policy for an operation name, falling back to the
// conservative default for unknown names.
func Lookup(operation string) OperationPolicy {
	if p, ok := policies[operation]; ok {
		return p
	}
	return defaultPolicy
}

// Operations lists every operation name the table classifies.
func Operations() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	return names
}
