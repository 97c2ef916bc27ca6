package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeMissingField    = "MISSING_FIELD"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL_ERROR"
	CodeConfiguration   = "CONFIGURATION_ERROR"
	CodeIssuer          = "ISSUER_ERROR"
	CodeTransfer        = "TRANSFER_ERROR"
	CodePersistence     = "PERSISTENCE_ERROR"
)

// Transfer failure kinds, carried in AppError.Details["kind"].
const (
	TransferNetwork   = "network"
	TransferStorage   = "storage"
	TransferIntegrity = "integrity"
	TransferUnknown   = "unknown"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
	Details map[string]interface{}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WithDetail sets a single detail entry and returns the same error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

func MissingField(field string) *AppError {
	return (&AppError{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("%s is required", field),
		Status:  http.StatusBadRequest,
	}).WithDetail("field", field)
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Configuration(message string) *AppError {
	return &AppError{
		Code:    CodeConfiguration,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// Issuer wraps a signing failure. The message is what the caller sees, so it
// must never include the provider error text.
func Issuer(message string, err error) *AppError {
	return &AppError{
		Code:    CodeIssuer,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func Transfer(kind, message string, err error) *AppError {
	return (&AppError{
		Code:    CodeTransfer,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}).WithDetail("kind", kind)
}

func Persistence(message string, err error) *AppError {
	return &AppError{
		Code:    CodePersistence,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// TransferKind reports the transfer failure kind of err, or "" when err is not
// a transfer error.
func TransferKind(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != CodeTransfer {
		return ""
	}
	kind, _ := appErr.Details["kind"].(string)
	return kind
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func TooManyRequests(message string, retryAfterSeconds int) *AppError {
	return (&AppError{
		Code:    CodeTooManyRequests,
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}).WithDetail("retry_after", retryAfterSeconds)
}
