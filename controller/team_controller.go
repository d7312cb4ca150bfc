// controller/team_controller.go
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

type TeamController struct {
	teamService   service.ITeamService
	confirmations service.IConfirmationService
}

func NewTeamController(teamService service.ITeamService, confirmations service.IConfirmationService) *TeamController {
	return &TeamController{
		teamService:   teamService,
		confirmations: confirmations,
	}
}

func (ctrl *TeamController) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.GET("", ctrl.ListTeams)
		teams.GET("/:id", ctrl.GetTeam)
		teams.POST("", ctrl.CreateTeam)
		teams.PATCH("/:id", ctrl.UpdateTeam)
		teams.DELETE("/:id", ctrl.DeleteTeam)
		teams.POST("/:id/assign", ctrl.AssignEmployee)
	}
}

func (ctrl *TeamController) ListTeams(c *gin.Context) {
	teams, err := ctrl.teamService.ListTeams(c.Request.Context())
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, teams)
}

func (ctrl *TeamController) GetTeam(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("team ID must be numeric"))
		return
	}

	team, err := ctrl.teamService.GetTeam(c.Request.Context(), id)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, team)
}

func (ctrl *TeamController) CreateTeam(c *gin.Context) {
	var payload model.CreateTeamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	team, err := ctrl.teamService.CreateTeam(c.Request.Context(), payload)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusCreated, team)
}

func (ctrl *TeamController) UpdateTeam(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("team ID must be numeric"))
		return
	}

	var payload model.UpdateTeamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	team, err := ctrl.teamService.UpdateTeam(c.Request.Context(), id, payload)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, team)
}

// DeleteTeam reads its confirmation decision from query parameters since
// DELETE requests carry no body by convention.
func (ctrl *TeamController) DeleteTeam(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("team ID must be numeric"))
		return
	}

	decision := confirmDecision{ConfirmationToken: c.Query("confirmation_token")}
	if raw, ok := c.GetQuery("confirm"); ok {
		confirmed := raw != "false"
		decision.Confirm = &confirmed
	}

	if decision.declined() {
		ctrl.confirmations.Cancel(decision.ConfirmationToken)
		util.RespondWithError(c, apierrors.NewOperationCancelledError("delete_team"))
		return
	}

	preview, err := ctrl.teamService.DeleteTeam(c.Request.Context(), id, decision.ConfirmationToken)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	if preview != nil {
		respondPending(c, preview)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *TeamController) AssignEmployee(c *gin.Context) {
	id, err := helper_util.GetIDParam(c)
	if err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError("team ID must be numeric"))
		return
	}

	var payload model.AssignEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.RespondWithError(c, apierrors.NewPayloadValidationError(err.Error()))
		return
	}

	team, err := ctrl.teamService.AssignEmployee(c.Request.Context(), id, payload)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, team)
}
