package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	NotFoundError     ErrorType = "NOT_FOUND"
	InvalidInputError ErrorType = "INVALID_INPUT"
	UpstreamError     ErrorType = "UPSTREAM_FAILURE"
	InternalError     ErrorType = "INTERNAL_ERROR"
	UnauthorizedError ErrorType = "UNAUTHORIZED"
	ForbiddenError    ErrorType = "FORBIDDEN"
	RateLimitedError  ErrorType = "RATE_LIMITED"
)

// AppError is the structured error every service returns to the transport layer.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates an AppError with the status that belongs to errType.
func New(errType ErrorType, message, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: statusFor(errType),
	}
}

// Wrap attaches an AppError envelope to err. A nil err stays nil.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: statusFor(errType),
		Raw:        err,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func InvalidInput(message, detail string) *AppError {
	return New(InvalidInputError, message, detail)
}

// Upstream reports a failed call to an external collaborator (AI, storage).
func Upstream(err error, message string) *AppError {
	if err == nil {
		return New(UpstreamError, message, "")
	}
	return Wrap(err, UpstreamError, message)
}

// Internal hides err behind a generic message; the raw error is kept for logs.
func Internal(err error) *AppError {
	return &AppError{
		Type:       InternalError,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func Unauthorized(message string) *AppError {
	return New(UnauthorizedError, message, "")
}

func Forbidden(message, detail string) *AppError {
	return New(ForbiddenError, message, detail)
}

func RateLimited(detail string) *AppError {
	return New(RateLimitedError, "too many requests", detail)
}

// As unwraps err into an AppError when one is present in the chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err; anything that is not an AppError is a 500.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func statusFor(errType ErrorType) int {
	switch errType {
	case NotFoundError:
		return http.StatusNotFound
	case InvalidInputError:
		return http.StatusBadRequest
	case UnauthorizedError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case RateLimitedError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
