// controller/employee_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/model"
	"github.com/nikhilsag/hrbridge/service"
	"github.com/nikhilsag/hrbridge/util"
	helper_util "github.com/nikhilsag/hrbridge/util/helper"
)

type EmployeeController struct {
	employeeService service.IEmployeeService
	confirmations   service.IConfirmationService
}

func NewEmployeeController(employeeService service.IEmployeeService, confirmations service.IConfirmationService) *EmployeeController {
	return &EmployeeController{
		employeeService: employeeService,
		confirmations:   confirmations,
	}
}

func (ctrl *EmployeeController) RegisterRoutes(r *gin.RouterGroup) {
	employees := r.Group("/employees")
	{
		employees.GET("", ctrl.ListEmployees)
		employees.GET("/:id", ctrl.GetEmployee)
		employees.POST("", ctrl.CreateEmployee)
		employees.PATCH("/:id", ctrl.UpdateEmployee)
		employees.POST("/:id/terminate", ctrl.TerminateEmployee)
	}
}

func (ctrl *EmployeeController) ListEmployees(c *gin.Context) {
	var filter model.EmployeeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	employees, err := ctrl.employeeService.ListEmployees(c.Request.Context(), filter)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, employees)
}

func (ctrl *EmployeeController) GetEmployee(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("employee ID must be numeric"))
		return
	}

	employee, err := ctrl.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, employee)
}

func (ctrl *EmployeeController) CreateEmployee(c *gin.Context) {
	var payload model.CreateEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	employee, err := ctrl.employeeService.CreateEmployee(c.Request.Context(), payload)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusCreated, employee)
}

func (ctrl *EmployeeController) UpdateEmployee(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("employee ID must be numeric"))
		return
	}

	var payload model.UpdateEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	employee, err := ctrl.employeeService.UpdateEmployee(c.Request.Context(), id, payload)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, employee)
}

// terminateEmployeeRequest deliberately carries no binding tags: on the
// confirming call only the token is present, and field validation belongs
// to the first phase.
type terminateEmployeeRequest struct {
	TerminatedOn      string `json:"terminated_on,omitempty"`
	TerminationReason string `json:"termination_reason,omitempty"`
	confirmDecision
}

func (ctrl *EmployeeController) TerminateEmployee(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("employee ID must be numeric"))
		return
	}

	var req terminateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	if req.declined() {
		ctrl.confirmations.Cancel(req.ConfirmationToken)
		util.RespondWithError(c, apierrors.NewOperationCancelledError("terminate_employee"))
		return
	}

	payload := model.TerminateEmployeePayload{
		TerminatedOn:      req.TerminatedOn,
		TerminationReason: req.TerminationReason,
	}
	employee, preview, err := ctrl.employeeService.TerminateEmployee(c.Request.Context(), id, payload, req.ConfirmationToken)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	if preview != nil {
		respondPending(c, preview)
		return
	}
	respondData(c, http.StatusOK, employee)
}
