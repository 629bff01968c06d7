package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/pkg/api"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached by a handler as {"error": "..."}.
// Underlying causes are logged and never written to the response.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var apiErr *api.Error
		if !errors.As(err, &apiErr) {
			apiErr = api.InternalError(err)
		}

		if apiErr.Status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("request_id", RequestIDFrom(c)),
				zap.String("path", c.FullPath()),
				zap.String("message", apiErr.Message),
				zap.Error(apiErr.Log),
			)
		} else if apiErr.Log != nil {
			logger.Debug("Request rejected",
				zap.String("request_id", RequestIDFrom(c)),
				zap.String("message", apiErr.Message),
				zap.Error(apiErr.Log),
			)
		}

		// a handler may have written already; never append a second body
		if c.Writer.Written() {
			return
		}

		c.AbortWithStatusJSON(apiErr.Status, api.ErrorResponse{Error: apiErr.Message})
	}
}
