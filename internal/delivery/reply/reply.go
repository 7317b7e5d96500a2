// Package reply maps transform outcomes to status codes and JSON bodies shared by
// every delivery surface.
package reply

import (
	"errors"
	"net/http"

	"github.com/optionmap/backend/internal/domain"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// ValidationErrorResponse is the body of a 400 response
type ValidationErrorResponse struct {
	Error string `json:"error"`
}

// InternalErrorResponse is the body of a 500 response
type InternalErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Status returns the status code for a transform error; nil means success
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidBatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody returns the response body for a failed request
func ErrorBody(err error) interface{} {
	if errors.Is(err, domain.ErrInvalidBatch) {
		return ValidationErrorResponse{Error: err.Error()}
	}
	return Internal(err.Error())
}

// Internal builds the 500 body carrying message for diagnostics
func Internal(message string) InternalErrorResponse {
	if message == "" {
		message = "Unknown error occurred"
	}
	return InternalErrorResponse{
		Success: false,
		Error:   internalErrorMessage,
		Message: message,
	}
}

// LogFailure records a failed request
func LogFailure(logger *zap.Logger, err error) {
	logger.Error("error processing mapping request",
		zap.Int("status", Status(err)),
		zap.Error(err),
	)
}
