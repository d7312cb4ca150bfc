// controller/audit_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nikhilsag/hrbridge/audit"
	apierrors "github.com/nikhilsag/hrbridge/errors"
	"github.com/nikhilsag/hrbridge/util"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

func (ctrl *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", ctrl.QueryLogs)
}

// QueryLogs returns the executed-mutation trail for a time window, most
// recent day by default.
func (ctrl *AuditController) QueryLogs(c *gin.Context) {
	to := time.Now()
	from := to.Add(-24 * time.Hour)

	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			util.RespondWithError(c, apierrors.NewPayloadValidationError("from must be an RFC 3339 timestamp"))
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			util.RespondWithError(c, apierrors.NewPayloadValidationError("to must be an RFC 3339 timestamp"))
			return
		}
	}

	logs, err := ctrl.auditService.QueryLogs(c.Request.Context(), from, to,
		c.Query("operation"), c.Query("entity_type"))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, logs)
}
