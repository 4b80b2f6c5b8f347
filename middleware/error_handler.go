package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tritorc/feedback-service/errors"
	"github.com/tritorc/feedback-service/logger"
	"github.com/tritorc/feedback-service/types"
)

// ErrorHandler converts errors attached via c.Error into the JSON response
// envelope. Handlers never write error bodies themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if appErr, ok := err.(*errors.AppError); ok {
			status := appErr.GetHTTPStatus()
			logger.LogHTTPError(c, appErr, status, appErr.Message)
			c.JSON(status, types.ErrorResponse(appErr.Message, appErr.Details))
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Invalid request body")
			c.JSON(http.StatusBadRequest, types.ErrorResponse("Invalid request body", nil))
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Internal server error")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse("Internal server error", nil))
	}
}
