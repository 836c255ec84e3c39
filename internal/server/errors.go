package server

import (
	"encoding/json"
	"errors"

	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/summarizer"
	"github.com/localrivet/lexsummary/internal/tools"
)

// ErrorResponse represents the structure of error details returned by the tools
type ErrorResponse struct {
	Status     string                 `json:"status"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StackTrace string                 `json:"stack_trace,omitempty"`
}

// Error response codes
const (
	StatusCodeEmptyInput       = "EMPTY_INPUT"
	StatusCodeInvalidParameter = "INVALID_PARAMETER"
	StatusCodeValidationError  = "VALIDATION_ERROR"
	StatusCodeDatabaseError    = "DATABASE_ERROR"
	StatusCodeConfigError      = "CONFIG_ERROR"
	StatusCodeTimeout          = "TIMEOUT"
	StatusCodeInternalError    = "INTERNAL_ERROR"
	StatusCodeUnknownError     = "UNKNOWN_ERROR"
)

// errorToResponse converts an error to a standardized ErrorResponse
func errorToResponse(err error) ErrorResponse {
	var code string
	var details map[string]interface{}
	var stackTrace string
	message := err.Error()

	var appErr *errortypes.AppError
	if errors.As(err, &appErr) {
		details = appErr.Fields
		stackTrace = appErr.StackInfo

		switch appErr.Type {
		case errortypes.ErrorTypeEmptyInput:
			code = StatusCodeEmptyInput
			message = tools.EmptyInputMessage
		case errortypes.ErrorTypeInvalidParameter:
			code = StatusCodeInvalidParameter
		case errortypes.ErrorTypeValidation:
			code = StatusCodeValidationError
		case errortypes.ErrorTypeDatabase:
			code = StatusCodeDatabaseError
		case errortypes.ErrorTypeConfig:
			code = StatusCodeConfigError
		case errortypes.ErrorTypeTimeout:
			code = StatusCodeTimeout
		case errortypes.ErrorTypeInternal:
			code = StatusCodeInternalError
		default:
			code = StatusCodeUnknownError
		}
	} else if errors.Is(err, errortypes.ErrEmptyInput) {
		code = StatusCodeEmptyInput
		message = tools.EmptyInputMessage
	} else {
		code = StatusCodeUnknownError
	}

	return ErrorResponse{
		Status:     tools.StatusError,
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: stackTrace,
	}
}

// marshalReport encodes a health report for a tool response.
func marshalReport(report *summarizer.HealthReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errortypes.InternalError(err, "failed to marshal health report")
	}
	return string(data), nil
}
