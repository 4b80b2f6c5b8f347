package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tritorc/feedback-service/internal/store"
	"github.com/tritorc/feedback-service/types"
)

type HealthHandler struct {
	feedbackStore store.FeedbackStore
	version       string
}

func NewHealthHandler(feedbackStore store.FeedbackStore, version string) *HealthHandler {
	return &HealthHandler{feedbackStore: feedbackStore, version: version}
}

// LivenessCheck reports that the process is up.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ReadinessCheck verifies database connectivity before reporting ready.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	check := types.HealthCheck{
		Status:     types.HealthStatusUp,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: map[string]types.HealthComponent{},
	}

	if err := h.feedbackStore.Ping(c.Request.Context()); err != nil {
		check.Status = types.HealthStatusDown
		check.Components["database"] = types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "database unreachable",
		}
		c.JSON(http.StatusServiceUnavailable, check)
		return
	}

	check.Components["database"] = types.HealthComponent{Status: types.HealthStatusUp}
	c.JSON(http.StatusOK, check)
}
