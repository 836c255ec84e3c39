// Package errortypes provides error types and handling for lexsummary.
package errortypes

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// ErrorType represents the type of error that occurred
type ErrorType string

// Error types
const (
	ErrorTypeEmptyInput       ErrorType = "empty_input"
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"
	ErrorTypeNonConvergence   ErrorType = "non_convergence"
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeDatabase         ErrorType = "database"
	ErrorTypeConfig           ErrorType = "config"
	ErrorTypeTimeout          ErrorType = "timeout"
	ErrorTypeInternal         ErrorType = "internal"
)

// Sentinel errors wrapped by AppError values at the API boundary.
var (
	// ErrEmptyInput is returned when the text is empty or whitespace only.
	ErrEmptyInput = errors.New("no input text")

	// ErrInvalidSentenceCount is returned when the requested sentence count is below 1.
	ErrInvalidSentenceCount = errors.New("sentence count must be at least 1")
)

// AppError represents an application error with context
type AppError struct {
	Err       error
	Type      ErrorType
	Message   string
	StackInfo string
	Fields    map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Err.Error()
}

// Unwrap unwraps the error to support errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithField adds a field to the error for additional context
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields adds multiple fields to the error for additional context
func (e *AppError) WithFields(fields map[string]interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// captureStack captures the stack trace at the call site
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		// Skip testing and standard library frames
		if !strings.Contains(frame.File, "testing/") && !strings.Contains(frame.File, "/go/src/") {
			fmt.Fprintf(&builder, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		}
		if !more {
			break
		}
	}
	return builder.String()
}

func newAppError(errType ErrorType, err error, message string) *AppError {
	if err == nil {
		err = errors.New("unknown error")
	}

	return &AppError{
		Err:       err,
		Type:      errType,
		Message:   message,
		StackInfo: captureStack(),
		Fields:    make(map[string]interface{}),
	}
}

// EmptyInputError creates an error for input that produced nothing to summarize.
func EmptyInputError(message string) *AppError {
	return newAppError(ErrorTypeEmptyInput, ErrEmptyInput, message)
}

// InvalidParameterError creates an error for a rejected parameter value.
func InvalidParameterError(err error, message string) *AppError {
	return newAppError(ErrorTypeInvalidParameter, err, message)
}

// NonConvergenceError creates a warning-level error for a ranking that hit its iteration cap.
func NonConvergenceError(err error, message string) *AppError {
	return newAppError(ErrorTypeNonConvergence, err, message)
}

// ValidationError creates a new validation error
func ValidationError(err error, message string) *AppError {
	return newAppError(ErrorTypeValidation, err, message)
}

// DatabaseError creates a new database error
func DatabaseError(err error, message string) *AppError {
	return newAppError(ErrorTypeDatabase, err, message)
}

// ConfigError creates a new configuration error
func ConfigError(err error, message string) *AppError {
	return newAppError(ErrorTypeConfig, err, message)
}

// TimeoutError creates an error for a pipeline run that exceeded its deadline.
func TimeoutError(err error, message string) *AppError {
	return newAppError(ErrorTypeTimeout, err, message)
}

// InternalError creates a new internal error
func InternalError(err error, message string) *AppError {
	return newAppError(ErrorTypeInternal, err, message)
}

// LogError logs an AppError using the provided slog.Logger or the default slog logger.
// Non-convergence errors are logged at warn level since they are not failures.
func LogError(logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		args := []any{
			"type", string(appErr.Type),
			"original_error", appErr.Err.Error(),
		}
		if appErr.StackInfo != "" && appErr.Type != ErrorTypeNonConvergence {
			args = append(args, "stack", appErr.StackInfo)
		}
		for k, v := range appErr.Fields {
			args = append(args, k, v)
		}
		if appErr.Type == ErrorTypeNonConvergence {
			logger.Warn(appErr.Message, args...)
			return
		}
		logger.Error(appErr.Message, args...)
	} else {
		logger.Error(err.Error(), "error", err)
	}
}

// TypeOf returns the ErrorType of err, or ErrorTypeInternal for foreign errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

func isType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsEmptyInputError checks if an error reports empty input
func IsEmptyInputError(err error) bool {
	return isType(err, ErrorTypeEmptyInput) || errors.Is(err, ErrEmptyInput)
}

// IsInvalidParameterError checks if an error is an invalid parameter error
func IsInvalidParameterError(err error) bool {
	return isType(err, ErrorTypeInvalidParameter)
}

// IsNonConvergenceError checks if an error is a non-convergence warning
func IsNonConvergenceError(err error) bool {
	return isType(err, ErrorTypeNonConvergence)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsDatabaseError checks if an error is a database error
func IsDatabaseError(err error) bool {
	return isType(err, ErrorTypeDatabase)
}
