package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode identifies a category of failure surfaced to the caller.
type ErrorCode string

const (
	// Request-side failures, rejected before any external call
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Classified transport/provider failures
	CodeTransportUnreachable ErrorCode = "TRANSPORT_UNREACHABLE"
	CodeInvalidCredential    ErrorCode = "INVALID_CREDENTIAL"
	CodeQuotaExceeded        ErrorCode = "QUOTA_EXCEEDED"
	CodeSafetyFilter         ErrorCode = "SAFETY_FILTER_TRIGGERED"
	CodeUnsupportedModel     ErrorCode = "UNSUPPORTED_MODEL"

	// The raw LLM output failed the quiz contract
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Session-side failures
	CodePreconditionViolated ErrorCode = "PRECONDITION_VIOLATED"
	CodeSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"

	CodeInternal ErrorCode = "INTERNAL_ERROR"
	CodeUnknown  ErrorCode = "UNKNOWN"
)

// Error is a classified, user-presentable error.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// MarshalJSON implements the json.Marshaler interface
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new classified Error
func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper constructors for common errors

func NewInvalidInputError(message string) *Error {
	return NewError(CodeInvalidInput, message, nil)
}

func NewPreconditionError(message string) *Error {
	return NewError(CodePreconditionViolated, message, nil)
}

func NewSessionNotFoundError(id string) *Error {
	return NewError(CodeSessionNotFound, fmt.Sprintf("quiz session not found: %s", id), nil)
}

func NewInternalError(message string, err error) *Error {
	return NewError(CodeInternal, message, err)
}
