package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tritorc/feedback-service/errors"
	"github.com/tritorc/feedback-service/internal/store"
	"github.com/tritorc/feedback-service/logger"
	"github.com/tritorc/feedback-service/types"
	"github.com/tritorc/feedback-service/validation"
)

// FeedbackHandler exposes the feedback collection over HTTP.
type FeedbackHandler struct {
	feedbackStore store.FeedbackStore
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackStore store.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{feedbackStore: feedbackStore}
}

// SubmitFeedback handles POST /api/feedback. The body is re-validated here
// regardless of what the submitting client checked; this copy of the rules
// is the authoritative one.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", []string{err.Error()}))
		return
	}

	if errs := validation.ValidateCreate(&req); len(errs) > 0 {
		_ = c.Error(errors.ValidationFailed("Validation failed", validation.Messages(errs)))
		return
	}

	fb, err := h.feedbackStore.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(errors.NewDatabaseError(err))
		return
	}

	logger.GetLogger().Infow("Feedback submitted",
		"id", fb.ID,
		"email", logger.MaskEmail(fb.Email),
		"company", fb.CompanyName,
	)

	c.JSON(http.StatusCreated, types.MessageResponse("Feedback submitted successfully!", fb))
}

// ListFeedback handles GET /api/feedback, newest first.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	list, err := h.feedbackStore.List(c.Request.Context())
	if err != nil {
		_ = c.Error(errors.NewDatabaseError(err))
		return
	}

	if list == nil {
		list = []*types.Feedback{}
	}
	c.JSON(http.StatusOK, types.SuccessResponse(list))
}

// GetFeedback handles GET /api/feedback/:id.
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fb, err := h.feedbackStore.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			_ = c.Error(errors.NotFound("Feedback", id))
			return
		}
		_ = c.Error(errors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse(fb))
}

// UpdateFeedback handles PUT /api/feedback/:id with a partial body; absent
// fields are left untouched, present ones must satisfy the full rule set.
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.FeedbackUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", []string{err.Error()}))
		return
	}

	if req.IsEmpty() {
		_ = c.Error(errors.InvalidArgument("No fields to update"))
		return
	}

	if errs := validation.ValidateUpdate(&req); len(errs) > 0 {
		_ = c.Error(errors.ValidationFailed("Validation failed", validation.Messages(errs)))
		return
	}

	fb, err := h.feedbackStore.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			_ = c.Error(errors.NotFound("Feedback", id))
		case store.ErrEmptyUpdate:
			_ = c.Error(errors.InvalidArgument("No fields to update"))
		default:
			_ = c.Error(errors.NewDatabaseError(err))
		}
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse("Feedback updated successfully!", fb))
}

// DeleteFeedback handles DELETE /api/feedback/:id. Deletion is permanent;
// there is no soft delete.
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.feedbackStore.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(errors.NewDatabaseError(err))
		return
	}
	if !deleted {
		_ = c.Error(errors.NotFound("Feedback", id))
		return
	}

	c.JSON(http.StatusOK, types.Response{Success: true, Message: "Feedback deleted successfully!"})
}

// GetAnalytics handles GET /api/feedback/analytics.
func (h *FeedbackHandler) GetAnalytics(c *gin.Context) {
	summary, err := h.feedbackStore.Analytics(c.Request.Context())
	if err != nil {
		_ = c.Error(errors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse(summary))
}

// parseID extracts the numeric path id, reporting an invalid-argument error
// for anything that is not an integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.Error(errors.InvalidArgument("Invalid feedback ID"))
		return 0, false
	}
	return id, true
}
