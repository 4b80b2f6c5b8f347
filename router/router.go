// Package router assembles the HTTP surface of the feedback service.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tritorc/feedback-service/config"
	"github.com/tritorc/feedback-service/handlers"
	"github.com/tritorc/feedback-service/middleware"
	"github.com/tritorc/feedback-service/services"
)

// Dependencies holds everything the router wires together.
type Dependencies struct {
	Config          *config.Config
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler
	Limiter         services.RateLimiterInterface
}

// SetupRouter builds the gin engine with all middleware and routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(deps.Config.Server.AllowedOrigins))

	r.GET("/health", deps.HealthHandler.ReadinessCheck)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	feedback := r.Group("/api/feedback")
	{
		submit := []gin.HandlerFunc{deps.FeedbackHandler.SubmitFeedback}
		if deps.Limiter != nil {
			submit = append([]gin.HandlerFunc{
				middleware.SubmitRateLimiter(deps.Limiter, deps.Config.RateLimit.SubmitPerMinute),
			}, submit...)
		}
		feedback.POST("", submit...)
		feedback.GET("", deps.FeedbackHandler.ListFeedback)
		feedback.GET("/analytics", deps.FeedbackHandler.GetAnalytics)
		feedback.GET("/:id", deps.FeedbackHandler.GetFeedback)
		feedback.PUT("/:id", deps.FeedbackHandler.UpdateFeedback)
		feedback.DELETE("/:id", deps.FeedbackHandler.DeleteFeedback)
	}

	return r
}
