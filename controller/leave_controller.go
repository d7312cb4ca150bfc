// controller/leave_controller.go
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

type LeaveController struct {
	leaveService  service.ILeaveService
	confirmations service.IConfirmationService
}

func NewLeaveController(leaveService service.ILeaveService, confirmations service.IConfirmationService) *LeaveController {
	return &LeaveController{
		leaveService:  leaveService,
		confirmations: confirmations,
	}
}

func (ctrl *LeaveController) RegisterRoutes(r *gin.RouterGroup) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", ctrl.ListLeaves)
		leaves.GET("/:id", ctrl.GetLeave)
		leaves.POST("", ctrl.CreateLeave)
		leaves.POST("/:id/approve", ctrl.ApproveLeave)
		leaves.POST("/:id/reject", ctrl.RejectLeave)
		leaves.POST("/:id/cancel", ctrl.CancelLeave)
	}
}

func (ctrl *LeaveController) ListLeaves(c *gin.Context) {
	var filter model.LeaveFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	leaves, err := ctrl.leaveService.ListLeaves(c.Request.Context(), filter)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, leaves)
}

func (ctrl *LeaveController) GetLeave(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("leave request ID must be numeric"))
		return
	}

	leave, err := ctrl.leaveService.GetLeave(c.Request.Context(), id)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, leave)
}

func (ctrl *LeaveController) CreateLeave(c *gin.Context) {
	var payload model.CreateLeavePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	leave, err := ctrl.leaveService.CreateLeave(c.Request.Context(), payload)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusCreated, leave)
}

func (ctrl *LeaveController) ApproveLeave(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("leave request ID must be numeric"))
		return
	}

	leave, err := ctrl.leaveService.ApproveLeave(c.Request.Context(), id)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, leave)
}

// rejectLeaveRequest carries no binding tags; the confirming call holds
// only the token and reason validation belongs to the first phase.
type rejectLeaveRequest struct {
	Reason string `json:"reason,omitempty"`
	confirmDecision
}

func (ctrl *LeaveController) RejectLeave(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("leave request ID must be numeric"))
		return
	}

	var req rejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	if req.declined() {
		ctrl.confirmations.Cancel(req.ConfirmationToken)
		util.RespondWithError(c, apierrors.NewOperationCancelledError("reject_leave"))
		return
	}

	leave, preview, err := ctrl.leaveService.RejectLeave(c.Request.Context(), id,
		model.RejectLeavePayload{Reason: req.Reason}, req.ConfirmationToken)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	if preview != nil {
		respondPending(c, preview)
		return
	}
	respondData(c, http.StatusOK, leave)
}

func (ctrl *LeaveController) CancelLeave(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("leave request ID must be numeric"))
		return
	}

	leave, err := ctrl.leaveService.CancelLeave(c.Request.Context(), id)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, leave)
}
