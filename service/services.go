// service/services.go
package service

import (
	"github.com/nikhilsag/hrbridge/cache"
	"github.com/nikhilsag/hrbridge/client"
	"github.com/nikhilsag/hrbridge/confirm"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/util"
)

// Services bundles every service so wiring stays in one place.
type Services struct {
	Employee     IEmployeeService
	Team         ITeamService
	Leave        ILeaveService
	Document     IDocumentService
	Confirmation IConfirmationService
}

func NewServices(
	apiClient *client.Client,
	store *cache.Cache,
	confirmations *confirm.Manager,
	validation *util.ValidationUtil,
	eventBus *util.EventBus,
) *Services {
	return &Services{
		Employee:     NewEmployeeService(apiClient, store, confirmations, validation, eventBus),
		Team:         NewTeamService(apiClient, store, confirmations, eventBus),
		Leave:        NewLeaveService(apiClient, store, confirmations, validation, eventBus),
		Document:     NewDocumentService(apiClient, store, confirmations, validation, eventBus),
		Confirmation: NewConfirmationService(confirmations),
	}
}

// IConfirmationService exposes pending-confirmation introspection and
// cancellation without granting execution rights.
type IConfirmationService interface {
	GetPreview(token string) (*model.OperationPreview, bool)
	Cancel(token string) bool
	PendingCount() int
}

type ConfirmationService struct {
	confirmations *confirm.Manager
}

func NewConfirmationService(confirmations *confirm.Manager) *ConfirmationService {
	return &ConfirmationService{confirmations: confirmations}
}

var _ IConfirmationService = &ConfirmationService{}

func (s *ConfirmationService) GetPreview(token string) (*model.OperationPreview, bool) {
	return s.confirmations.GetPreview(token)
}

func (s *ConfirmationService) Cancel(token string) bool {
	return s.confirmations.Cancel(token)
}

func (s *ConfirmationService) PendingCount() int {
	return s.confirmations.PendingCount()
}
