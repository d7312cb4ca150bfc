// service/employee_service.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikhilsag/hrbridge/cache"
	"github.com/nikhilsag/hrbridge/client"
	"github.com/nikhilsag/hrbridge/confirm"
	apierrors "github.com/nikhilsag/hrbridge/errors"
	logger "github.com/nikhilsag/hrbridge/logging"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/policy"
	"github.com/nikhilsag/hrbridge/util"
)

type IEmployeeService interface {
	ListEmployees(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*model.Employee, error)
	CreateEmployee(ctx context.Context, payload model.CreateEmployeePayload) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, payload model.UpdateEmployeePayload) (*model.Employee, error)
	TerminateEmployee(ctx context.Context, id int64, payload model.TerminateEmployeePayload, confirmationToken string) (*model.Employee, *model.OperationPreview, error)
}

type EmployeeService struct {
	apiClient     *client.Client
	cache         *cache.Cache
	confirmations *confirm.Manager
	validation    *util.ValidationUtil
	eventBus      *util.EventBus

	mu            sync.Mutex
	lastTerminate time.Time
}

func NewEmployeeService(
	apiClient *client.Client,
	store *cache.Cache,
	confirmations *confirm.Manager,
	validation *util.ValidationUtil,
	eventBus *util.EventBus,
) *EmployeeService {
	return &EmployeeService{
		apiClient:     apiClient,
		cache:         store,
		confirmations: confirmations,
		validation:    validation,
		eventBus:      eventBus,
	}
}

var _ IEmployeeService = &EmployeeService{}

func (s *EmployeeService) ListEmployees(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error) {
	key := cache.Key("employees", filter.Params())
	return cache.Cached(s.cache, key, cache.TTLFor("employees"), func() ([]model.Employee, error) {
		return s.apiClient.ListEmployees(ctx, filter)
	})
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	key := cache.Key("employees", map[string]any{"id": id})
	return cache.Cached(s.cache, key, cache.TTLFor("employees"), func() (*model.Employee, error) {
		return s.apiClient.GetEmployee(ctx, id)
	})
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, payload model.CreateEmployeePayload) (*model.Employee, error) {
	if err := s.validation.ValidateCreateEmployee(payload); err != nil {
		return nil, apierrors.NewPayloadValidationError(err.Error())
	}

	employee, err := s.apiClient.CreateEmployee(ctx, payload, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("employees")
	s.publish(ctx, "create_employee", employee.ID, false, map[string]any{
		"first_name": payload.FirstName,
		"last_name":  payload.LastName,
		"email":      payload.Email,
	})
	return employee, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, payload model.UpdateEmployeePayload) (*model.Employee, error) {
	employee, err := s.apiClient.UpdateEmployee(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("employees")
	s.publish(ctx, "update_employee", id, false, nil)
	return employee, nil
}

// TerminateEmployee is confirmation-gated. Without a token it validates the
// payload, builds a preview against the current employee record and parks
// the operation; nothing reaches the upstream platform. With a token it
// consumes the confirmation and executes the payload stored at preview
// time, not whatever the second call carries.
func (s *EmployeeService) TerminateEmployee(ctx context.Context, id int64, payload model.TerminateEmployeePayload, confirmationToken string) (*model.Employee, *model.OperationPreview, error) {
	pol := policy.Lookup("terminate_employee")
	if pol.RequiresConfirmation && confirmationToken == "" {
		if err := s.validation.ValidateTerminateEmployee(payload); err != nil {
			return nil, nil, apierrors.NewPayloadValidationError(err.Error())
		}

		employee, err := s.GetEmployee(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		warnings := []string{}
		if pol.ImpactDescription != "" {
			warnings = append(warnings, pol.ImpactDescription)
		}
		if !employee.Active {
			warnings = append(warnings, "Employee is already inactive.")
		}

		changes := map[string]model.FieldChange{
			"active":        {From: employee.Active, To: false},
			"terminated_on": {To: payload.TerminatedOn},
		}
		if payload.TerminationReason != "" {
			changes["termination_reason"] = model.FieldChange{To: payload.TerminationReason}
		}

		deferred := map[string]any{
			"terminated_on": payload.TerminatedOn,
		}
		if payload.TerminationReason != "" {
			deferred["termination_reason"] = payload.TerminationReason
		}

		_, preview := s.confirmations.RequestConfirmation(
			"terminate_employee", "employee", &id, employee.FullName(),
			deferred, changes, warnings)
		return nil, &preview, nil
	}

	pending, err := s.confirmations.Confirm(confirmationToken)
	if err != nil {
		return nil, nil, err
	}
	if pending.Operation != "terminate_employee" || pending.Preview.EntityID == nil || *pending.Preview.EntityID != id {
		// A token issued for a different operation must not trigger this one.
		return nil, nil, apierrors.NewConfirmationExpiredError(confirmationToken)
	}

	// Consecutive terminations have a cooldown; a rejected one requires a
	// fresh confirmation round-trip.
	if pol.Cooldown > 0 {
		s.mu.Lock()
		tooSoon := !s.lastTerminate.IsZero() && time.Since(s.lastTerminate) < pol.Cooldown
		s.mu.Unlock()
		if tooSoon {
			return nil, nil, apierrors.NewPayloadValidationError("another termination was executed moments ago, wait before confirming the next one")
		}
	}

	employee, err := s.apiClient.TerminateEmployee(ctx, id, pending.Payload, uuid.NewString())
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	s.lastTerminate = time.Now()
	s.mu.Unlock()

	s.cache.InvalidatePrefix("employees")
	s.publish(ctx, "terminate_employee", id, true, pending.Payload)
	logger.Info("Employee terminated",
		zap.Int64("employeeID", id),
		zap.String("token", confirmationToken))
	return employee, nil, nil
}

func (s *EmployeeService) publish(ctx context.Context, operation string, entityID int64, confirmed bool, payload map[string]any) {
	s.eventBus.Publish(ctx, operation, model.OperationEvent{
		Operation:  operation,
		EntityType: "employee",
		EntityID:   entityID,
		Confirmed:  confirmed,
		Payload:    payload,
		Timestamp:  time.Now(),
	})
}
