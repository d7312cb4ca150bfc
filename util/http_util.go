// util/http_util.go
package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/nikhilsag/hrbridge/errors"
	logger "github.com/nikhilsag/hrbridge/logging"
)

// RespondWithError renders any error as a JSON response: the status is
// derived from the taxonomy kind, the body carries the user-presentable
// message, and the raw error is logged.
func RespondWithError(c *gin.Context, err error) {
	status := StatusForError(err)
	message := apierrors.GetUserMessage(err)

	logger.Error(message,
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(status, gin.H{"error": message})
}

// StatusForError maps a taxonomy kind to the status this gateway answers
// with. Unknown errors are internal server errors.
func StatusForError(err error) int {
	apiErr, ok := err.(*apierrors.APIError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case apierrors.KindAuthentication:
		return http.StatusUnauthorized
	case apierrors.KindAuthorization:
		return http.StatusForbidden
	case apierrors.KindNotFound:
		return http.StatusNotFound
	case apierrors.KindValidation:
		return http.StatusBadRequest
	case apierrors.KindConflict, apierrors.KindOperationCancelled:
		return http.StatusConflict
	case apierrors.KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case apierrors.KindRateLimit:
		return http.StatusTooManyRequests
	case apierrors.KindTimeout:
		return http.StatusGatewayTimeout
	case apierrors.KindServer, apierrors.KindNetwork, apierrors.KindSchemaValidation:
		return http.StatusBadGateway
	case apierrors.KindConfirmationExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
