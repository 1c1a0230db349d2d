package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	// MessageID selects the localized text shown to the user.
	MessageID string
	Status    int
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithMessageID(id string) *AppError {
	e.MessageID = id
	return e
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:      "NOT_FOUND",
		Message:   fmt.Sprintf("%s not found", resource),
		MessageID: "not_found",
		Status:    http.StatusNotFound,
		Err:       err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:      "UNAUTHORIZED",
		Message:   message,
		MessageID: "unauthorized",
		Status:    http.StatusUnauthorized,
		Err:       err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:      "FORBIDDEN",
		Message:   message,
		MessageID: "forbidden",
		Status:    http.StatusForbidden,
		Err:       err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:      "TOO_MANY_REQUESTS",
		Message:   message,
		MessageID: "too_many_requests",
		Status:    http.StatusTooManyRequests,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:      "INTERNAL_ERROR",
		Message:   message,
		MessageID: "internal_error",
		Status:    http.StatusInternalServerError,
		Err:       err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
