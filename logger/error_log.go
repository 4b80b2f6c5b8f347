package logger

import (
	"github.com/gin-gonic/gin"
)

// LogHTTPError logs an error that occurred while handling an HTTP request,
// together with the request context needed to trace it.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	log.Errorw(message,
		"error", err,
		"status_code", statusCode,
		"request_id", c.GetString("request_id"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
	)
}
