// Package errors provides the application error taxonomy for the guardrails API.
// Services return *AppError values so handlers can render a consistent envelope
// without leaking store or transport details to callers.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Relay creates an AppError that carries a status code and message decided
// by a remote service rather than by the sentinel.
func Relay(sentinel *AppError, statusCode int, message string, internal error) *AppError {
	if message == "" {
		message = sentinel.Message
	}
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// General errors.
var (
	ErrInvalidInput     = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrMissingFields    = &AppError{Code: "MISSING_FIELDS", Message: "Missing required fields", StatusCode: http.StatusBadRequest}
	ErrEndpointNotFound = &AppError{Code: "ENDPOINT_NOT_FOUND", Message: "Endpoint not found", StatusCode: http.StatusNotFound}
	ErrInternalServer   = &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", StatusCode: http.StatusInternalServerError}
)

// Guardrail rule errors.
var (
	ErrGuardrailNotFound  = &AppError{Code: "GUARDRAIL_NOT_FOUND", Message: "Guardrail not found", StatusCode: http.StatusNotFound}
	ErrDuplicateGuardrail = &AppError{Code: "DUPLICATE_GUARDRAIL", Message: "A guardrail with this name already exists", StatusCode: http.StatusBadRequest}
	ErrFetchGuardrails    = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to fetch guardrails", StatusCode: http.StatusInternalServerError}
	ErrFetchGuardrail     = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to fetch guardrail", StatusCode: http.StatusInternalServerError}
	ErrCreateGuardrail    = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to create guardrail", StatusCode: http.StatusInternalServerError}
	ErrUpdateGuardrail    = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to update guardrail", StatusCode: http.StatusInternalServerError}
	ErrDeleteGuardrail    = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to delete guardrail", StatusCode: http.StatusInternalServerError}
)

// Audit log errors.
var (
	ErrAuditLogNotFound = &AppError{Code: "AUDIT_LOG_NOT_FOUND", Message: "Audit log not found", StatusCode: http.StatusNotFound}
	ErrFetchAuditLogs   = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to fetch audit logs", StatusCode: http.StatusInternalServerError}
	ErrFetchAuditLog    = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to fetch audit log", StatusCode: http.StatusInternalServerError}
)

// User and statistics errors.
var (
	ErrFetchUsers = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to fetch users", StatusCode: http.StatusInternalServerError}
	ErrFetchStats = &AppError{Code: "INTERNAL_ERROR", Message: "Failed to fetch statistics", StatusCode: http.StatusInternalServerError}
)

// Agent engine errors.
var (
	ErrMissingChatFields = &AppError{Code: "MISSING_FIELDS", Message: "Missing required fields: user_id, query", StatusCode: http.StatusBadRequest}
	ErrAgentEngine       = &AppError{Code: "AGENT_ENGINE_ERROR", Message: "Agent engine error", StatusCode: http.StatusBadGateway}
	ErrQueryFailed       = &AppError{Code: "QUERY_FAILED", Message: "Failed to execute query", StatusCode: http.StatusInternalServerError}
)
