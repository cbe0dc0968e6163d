package response

import (
	"net/http"

	"anoa.com/fedipost/pkg/apperror"
	"anoa.com/fedipost/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ResponseError standardized error response
func ResponseError(c *gin.Context, log *logger.Logger, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code >= http.StatusInternalServerError && log != nil {
		log.Error("internal error",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}

	c.JSON(code, gin.H{"error": apperror.PublicMessage(err)})
}
