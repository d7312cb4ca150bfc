// audit/service.go
package audit

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	logger "github.com/nikhilsag/hrbridge/logging"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/util"
)

type Service interface {
	RecordOperation(ctx context.Context, event model.OperationEvent) error
	QueryLogs(ctx context.Context, from, to time.Time, operation, entityType string) ([]AuditLog, error)
}

type service struct {
	repo Repository
}

var _ Service = &service{}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RecordOperation converts an operation event into an audit document and
// indexes it. High-risk operations that went through confirmation carry
// Confirmed=true.
func (s *service) RecordOperation(ctx context.Context, event model.OperationEvent) error {
	var payload json.RawMessage
	if event.Payload != nil {
		data, err := json.Marshal(event.Payload)
		if err != nil {
			logger.Warn("Failed to serialize audit payload",
				zap.String("operation", event.Operation),
				zap.Error(err))
		} else {
			payload = data
		}
	}

	log := AuditLog{
		Timestamp:  event.Timestamp,
		Operation:  event.Operation,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Confirmed:  event.Confirmed,
		Payload:    payload,
	}
	return s.repo.LogOperation(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, operation, entityType string) ([]AuditLog, error) {
	return s.repo.QueryLogs(ctx, from, to, operation, entityType)
}

// SubscribeToEvents wires the audit trail into the event bus. The trail is
// best effort: an unreachable index must never fail the mutation itself, so
// failures are logged and swallowed.
func SubscribeToEvents(bus *util.EventBus, svc Service) {
	bus.Subscribe("*", func(ctx context.Context, event util.Event) error {
		op, ok := event.Payload.(model.OperationEvent)
		if !ok {
			return nil
		}
		if err := svc.RecordOperation(ctx, op); err != nil {
			logger.Warn("Failed to record audit log",
				zap.String("operation", op.Operation),
				zap.Error(err))
		}
		return nil
	})
}
