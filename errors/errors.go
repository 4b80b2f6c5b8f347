// Package errors defines the structured application error type used across
// the service and the helpers that classify failures into the categories the
// API exposes: validation, not-found, invalid-argument, database and server.
package errors

import (
	"fmt"
	"net/http"

	"github.com/tritorc/feedback-service/logger"
)

type ErrorType string

const (
	ValidationError      ErrorType = "VALIDATION_ERROR"
	NotFoundError        ErrorType = "NOT_FOUND"
	InvalidArgumentError ErrorType = "INVALID_ARGUMENT"
	DatabaseError        ErrorType = "DATABASE_ERROR"
	ServerError          ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error. Details carries the
// full list of field-level validation messages, never just the first one.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    []string  `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status code associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError of the given type.
func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// ValidationFailed reports one or more violated validation rules. Every
// violated field contributes its own message to details.
func ValidationFailed(message string, details []string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound reports that an id-based lookup matched no record.
func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Details:    []string{fmt.Sprintf("ID: %v", id)},
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidArgument reports a malformed identifier or an empty update payload.
func InvalidArgument(message string) *AppError {
	return New(InvalidArgumentError, message)
}

// NewDatabaseError logs the raw storage failure and returns a sanitized
// error; the original detail is never surfaced to the caller.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return New(ServerError, message)
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError, InvalidArgumentError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case DatabaseError, ServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
