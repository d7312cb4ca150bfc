// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nikhilsag/hrbridge/model"
)

// MockEmployeeService is a mock implementation of service.IEmployeeService
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, payload model.CreateEmployeePayload) (*model.Employee, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) UpdateEmployee(ctx context.Context, id int64, payload model.UpdateEmployeePayload) (*model.Employee, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) TerminateEmployee(ctx context.Context, id int64, payload model.TerminateEmployeePayload, confirmationToken string) (*model.Employee, *model.OperationPreview, error) {
	args := m.Called(ctx, id, payload, confirmationToken)
	var employee *model.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*model.Employee)
	}
	var preview *model.OperationPreview
	if args.Get(1) != nil {
		preview = args.Get(1).(*model.OperationPreview)
	}
	return employee, preview, args.Error(2)
}

// MockConfirmationService is a mock implementation of service.IConfirmationService
type MockConfirmationService struct {
	mock.Mock
}

func (m *MockConfirmationService) GetPreview(token string) (*model.OperationPreview, bool) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.OperationPreview), args.Bool(1)
}

func (m *MockConfirmationService) Cancel(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

func (m *MockConfirmationService) PendingCount() int {
	args := m.Called()
	return args.Int(0)
}
