package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tritorc/feedback-service/logger"
	"github.com/tritorc/feedback-service/services"
	"github.com/tritorc/feedback-service/types"
)

// SubmitRateLimiter throttles feedback submissions per client IP. When the
// limiter itself fails the request is allowed through; losing a duplicate
// check is preferable to rejecting real submissions.
func SubmitRateLimiter(limiter services.RateLimiterInterface, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "feedback:submit:" + c.ClientIP()

		limited, retryAfter, err := limiter.CheckLimit(c.Request.Context(), key, perMinute, time.Minute)
		if err != nil {
			logger.GetLogger().Warnw("Rate limiter unavailable, allowing request",
				"error", err, "client_ip", c.ClientIP())
			c.Next()
			return
		}

		if limited {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				types.ErrorResponse("Too many requests. Please try again later.", nil))
			return
		}

		c.Next()
	}
}
