// controller/common.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikhilsag/hrbridge/model"
)

// respondPending renders the two-phase reply for a parked mutation: nothing
// executed yet, the caller must come back with the token.
func respondPending(c *gin.Context, preview *model.OperationPreview) {
	c.JSON(http.StatusAccepted, gin.H{
		"confirmation_required": true,
		"confirmation_token":    preview.ConfirmationToken,
		"preview":               preview,
	})
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

// confirmDecision is embedded in gated request bodies. Confirm defaults to
// true when a token is present; an explicit false cancels the pending
// operation instead of executing it.
type confirmDecision struct {
	ConfirmationToken string `json:"confirmation_token,omitempty"`
	Confirm           *bool  `json:"confirm,omitempty"`
}

func (d confirmDecision) declined() bool {
	return d.ConfirmationToken != "" && d.Confirm != nil && !*d.Confirm
}
