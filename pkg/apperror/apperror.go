package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("store unavailable")
)

// FieldError is one entry of the details list in the error envelope:
// {"field": "userName", "reason": "too_long"}.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type AppError struct {
	BaseError error
	Message   string
	Details   []FieldError
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.BaseError.Error(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.BaseError.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg string, details []FieldError, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource string) *AppError {
	return NewAppError(ErrNotFound, fmt.Sprintf("%s not found.", resource), nil, nil)
}

func NewValidation(msg string, details ...FieldError) *AppError {
	return NewAppError(ErrInvalidInput, msg, details, nil)
}

func NewConflict(msg string, details ...FieldError) *AppError {
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred.", nil, fmt.Errorf("%s: %w", details, err))
}

// NewUnavailable marks a failed read/write against the backing store. The
// caller owns any retry policy; nothing in this package retries.
func NewUnavailable(details string, err error) *AppError {
	return NewAppError(ErrUnavailable, "Service temporarily unavailable.", nil, fmt.Errorf("%s: %w", details, err))
}

func NewUnauthorized(msg string) *AppError {
	return NewAppError(ErrUnauthorized, msg, nil, nil)
}

func NewPermissionDenied(msg string) *AppError {
	return NewAppError(ErrPermission, msg, nil, nil)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrPermission):
		return "FORBIDDEN"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// Envelope renders the response body for an error:
// {"error": {"code": ..., "message": ..., "details": [...]}}.
// A failed request never carries an "items" field.
func Envelope(err error) gin.H {
	message := "An internal server error occurred."
	details := []FieldError{}

	var appErr *AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		if appErr.Details != nil {
			details = appErr.Details
		}
	}

	return gin.H{
		"error": gin.H{
			"code":    Code(err),
			"message": message,
			"details": details,
		},
	}
}
