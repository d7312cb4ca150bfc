// service/leave_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilsag/hrbridge/cache"
	"github.com/nikhilsag/hrbridge/client"
	"github.com/nikhilsag/hrbridge/confirm"
	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/policy"
	"github.com/nikhilsag/hrbridge/util"
)

type ILeaveService interface {
	ListLeaves(ctx context.Context, filter model.LeaveFilter) ([]model.LeaveRequest, error)
	GetLeave(ctx context.Context, id int64) (*model.LeaveRequest, error)
	CreateLeave(ctx context.Context, payload model.CreateLeavePayload) (*model.LeaveRequest, error)
	ApproveLeave(ctx context.Context, id int64) (*model.LeaveRequest, error)
	RejectLeave(ctx context.Context, id int64, payload model.RejectLeavePayload, confirmationToken string) (*model.LeaveRequest, *model.OperationPreview, error)
	CancelLeave(ctx context.Context, id int64) (*model.LeaveRequest, error)
}

type LeaveService struct {
	apiClient     *client.Client
	cache         *cache.Cache
	confirmations *confirm.Manager
	validation    *util.ValidationUtil
	eventBus      *util.EventBus
}

func NewLeaveService(
	apiClient *client.Client,
	store *cache.Cache,
	confirmations *confirm.Manager,
	validation *util.ValidationUtil,
	eventBus *util.EventBus,
) *LeaveService {
	return &LeaveService{
		apiClient:     apiClient,
		cache:         store,
		confirmations: confirmations,
		validation:    validation,
		eventBus:      eventBus,
	}
}

var _ ILeaveService = &LeaveService{}

func (s *LeaveService) ListLeaves(ctx context.Context, filter model.LeaveFilter) ([]model.LeaveRequest, error) {
	key := cache.Key("leaves", filter.Params())
	return cache.Cached(s.cache, key, cache.TTLFor("leaves"), func() ([]model.LeaveRequest, error) {
		return s.apiClient.ListLeaves(ctx, filter)
	})
}

func (s *LeaveService) GetLeave(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	key := cache.Key("leaves", map[string]any{"id": id})
	return cache.Cached(s.cache, key, cache.TTLFor("leaves"), func() (*model.LeaveRequest, error) {
		return s.apiClient.GetLeave(ctx, id)
	})
}

func (s *LeaveService) CreateLeave(ctx context.Context, payload model.CreateLeavePayload) (*model.LeaveRequest, error) {
	if err := s.validation.ValidateCreateLeave(payload); err != nil {
		return nil, apierrors.NewPayloadValidationError(err.Error())
	}

	leave, err := s.apiClient.CreateLeave(ctx, payload, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("leaves")
	s.publish(ctx, "create_leave", leave.ID, false, map[string]any{
		"employee_id": payload.EmployeeID,
		"leave_type":  payload.LeaveType,
	})
	return leave, nil
}

func (s *LeaveService) ApproveLeave(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	leave, err := s.apiClient.ApproveLeave(ctx, id, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("leaves")
	s.publish(ctx, "approve_leave", id, false, nil)
	return leave, nil
}

// RejectLeave is confirmation-gated since a rejection is visible to the
// employee and cannot be quietly withdrawn.
func (s *LeaveService) RejectLeave(ctx context.Context, id int64, payload model.RejectLeavePayload, confirmationToken string) (*model.LeaveRequest, *model.OperationPreview, error) {
	pol := policy.Lookup("reject_leave")
	if pol.RequiresConfirmation && confirmationToken == "" {
		if payload.Reason == "" {
			return nil, nil, apierrors.NewPayloadValidationError("rejection reason cannot be empty")
		}

		leave, err := s.GetLeave(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if leave.Status != model.LeaveStatusPending {
			return nil, nil, apierrors.NewPayloadValidationError(
				fmt.Sprintf("leave request is %s, only pending requests can be rejected", leave.Status))
		}

		changes := map[string]model.FieldChange{
			"status": {From: leave.Status, To: model.LeaveStatusRejected},
			"reason": {To: payload.Reason},
		}
		deferred := map[string]any{"reason": payload.Reason}
		entityName := fmt.Sprintf("%s leave %s to %s", leave.LeaveType, leave.StartOn, leave.FinishOn)

		_, preview := s.confirmations.RequestConfirmation(
			"reject_leave", "leave_request", &id, entityName,
			deferred, changes, []string{pol.ImpactDescription})
		return nil, &preview, nil
	}

	pending, err := s.confirmations.Confirm(confirmationToken)
	if err != nil {
		return nil, nil, err
	}
	if pending.Operation != "reject_leave" || pending.Preview.EntityID == nil || *pending.Preview.EntityID != id {
		return nil, nil, apierrors.NewConfirmationExpiredError(confirmationToken)
	}

	leave, err := s.apiClient.RejectLeave(ctx, id, pending.Payload, uuid.NewString())
	if err != nil {
		return nil, nil, err
	}

	s.cache.InvalidatePrefix("leaves")
	s.publish(ctx, "reject_leave", id, true, pending.Payload)
	return leave, nil, nil
}

func (s *LeaveService) CancelLeave(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	leave, err := s.apiClient.CancelLeave(ctx, id, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix("leaves")
	s.publish(ctx, "cancel_leave", id, false, nil)
	return leave, nil
}

func (s *LeaveService) publish(ctx context.Context, operation string, entityID int64, confirmed bool, payload map[string]any) {
	s.eventBus.Publish(ctx, operation, model.OperationEvent{
		Operation:  operation,
		EntityType: "leave_request",
		EntityID:   entityID,
		Confirmed:  confirmed,
		Payload:    payload,
		Timestamp:  time.Now(),
	})
}
