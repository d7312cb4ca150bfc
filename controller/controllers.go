// controller/controllers.go
package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/nikhilsag/hrbridge/audit"
	"github.com/nikhilsag/hrbridge/service"
)

// Controllers bundles every HTTP controller for route registration.
type Controllers struct {
	Employee     *EmployeeController
	Team         *TeamController
	Leave        *LeaveController
	Document     *DocumentController
	Confirmation *ConfirmationController
	Audit        *AuditController
}

func NewControllers(svcs *service.Services, auditService audit.Service) *Controllers {
	return &Controllers{
		Employee:     NewEmployeeController(svcs.Employee, svcs.Confirmation),
		Team:         NewTeamController(svcs.Team, svcs.Confirmation),
		Leave:        NewLeaveController(svcs.Leave, svcs.Confirmation),
		Document:     NewDocumentController(svcs.Document, svcs.Confirmation),
		Confirmation: NewConfirmationController(svcs.Confirmation),
		Audit:        NewAuditController(auditService),
	}
}

func (ctrl *Controllers) RegisterRoutes(r *gin.RouterGroup) {
	ctrl.Employee.RegisterRoutes(r)
	ctrl.Team.RegisterRoutes(r)
	ctrl.Leave.RegisterRoutes(r)
	ctrl.Document.RegisterRoutes(r)
	ctrl.Confirmation.RegisterRoutes(r)
	ctrl.Audit.RegisterRoutes(r)
}
