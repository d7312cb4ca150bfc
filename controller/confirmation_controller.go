// controller/confirmation_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/service"
	"github.com/nikhilsag/hrbridge/util"
)

// ConfirmationController lets callers inspect and abandon pending
// confirmations. Execution always goes through the operation's own
// endpoint; this surface cannot trigger anything.
type ConfirmationController struct {
	confirmationService service.IConfirmationService
}

func NewConfirmationController(confirmationService service.IConfirmationService) *ConfirmationController {
	return &ConfirmationController{confirmationService: confirmationService}
}

func (ctrl *ConfirmationController) RegisterRoutes(r *gin.RouterGroup) {
	confirmations := r.Group("/confirmations")
	{
		confirmations.GET("/:token", ctrl.GetPreview)
		confirmations.DELETE("/:token", ctrl.CancelConfirmation)
	}
}

func (ctrl *ConfirmationController) GetPreview(c *gin.Context) {
	token := c.Param("token")
	preview, ok := ctrl.confirmationService.GetPreview(token)
	if !ok {
		util.RespondWithError(c, apierrors.NewConfirmationExpiredError(token))
		return
	}
	respondData(c, http.StatusOK, preview)
}

func (ctrl *ConfirmationController) CancelConfirmation(c *gin.Context) {
	token := c.Param("token")
	if !ctrl.confirmationService.Cancel(token) {
		util.RespondWithError(c, apierrors.NewConfirmationExpiredError(token))
		return
	}
	c.Status(http.StatusNoContent)
}
