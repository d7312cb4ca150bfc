package helper_util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses the numeric :id path parameter.
func GetIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
