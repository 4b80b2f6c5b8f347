package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritorc/feedback-service/errors"
	"github.com/tritorc/feedback-service/logger"
	"github.com/tritorc/feedback-service/types"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

func runWithError(t *testing.T, err error) (*httptest.ResponseRecorder, types.Response) {
	t.Helper()
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var resp types.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestErrorHandler(t *testing.T) {
	t.Run("AppError maps to its status and details", func(t *testing.T) {
		w, resp := runWithError(t, errors.ValidationFailed("Validation failed",
			[]string{"Email is required", "Date is required"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Validation failed", resp.Error)
		assert.Len(t, resp.Details, 2)
	})

	t.Run("not found is 404", func(t *testing.T) {
		w, resp := runWithError(t, errors.NotFound("Feedback", 99))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Feedback not found", resp.Error)
	})

	t.Run("unknown errors are sanitized to 500", func(t *testing.T) {
		w, resp := runWithError(t, fmt.Errorf("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", resp.Error)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("no error leaves the response alone", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, types.SuccessResponse("fine"))
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates an id when none supplied", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("honors a caller-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}
