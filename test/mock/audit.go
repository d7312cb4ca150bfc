// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nikhilsag/hrbridge/audit"
	"github.com/nikhilsag/hrbridge/model"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) RecordOperation(ctx context.Context, event model.OperationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, from, to time.Time, operation, entityType string) ([]audit.AuditLog, error) {
	args := m.Called(ctx, from, to, operation, entityType)
	return args.Get(0).([]audit.AuditLog), args.Error(1)
}
