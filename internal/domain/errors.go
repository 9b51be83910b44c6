package domain

import (
	"errors"
	"net/http"
)

// Error codes carried by AppError. Each maps to one HTTP status.
const (
	CodeNotFound      = 1
	CodeAlreadyExists = 2
	CodeValidation    = 3
	CodeInternal      = 4
	CodeUnauthorized  = 5
	CodeForbidden     = 6
)

var codeStatus = map[int]int{
	CodeNotFound:      http.StatusNotFound,
	CodeAlreadyExists: http.StatusConflict,
	CodeValidation:    http.StatusBadRequest,
	CodeInternal:      http.StatusInternalServerError,
	CodeUnauthorized:  http.StatusUnauthorized,
	CodeForbidden:     http.StatusForbidden,
}

// AppError is a business error: a code, a client-facing message and an
// optional cause that is never serialized.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NotFoundError reports that no live entity matched, e.g. "faq not found".
func NotFoundError(entity string) *AppError {
	return NewAppError(CodeNotFound, entity+" not found", nil)
}

// ConflictError reports a business code already held by a live row.
func ConflictError(entity, field, value string) *AppError {
	return NewAppError(CodeAlreadyExists, entity+" with "+field+" '"+value+"' already exists", nil)
}

func ValidationFailed(message string) *AppError {
	return NewAppError(CodeValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return NewAppError(CodeUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(CodeForbidden, message, nil)
}

// Internal wraps an infrastructure failure. Its message is not shown to clients.
func Internal(message string, err error) *AppError {
	return NewAppError(CodeInternal, message, err)
}

// CodeOf returns the code of the first AppError in err's chain, or 0.
func CodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

func IsNotFound(err error) bool      { return CodeOf(err) == CodeNotFound }
func IsAlreadyExists(err error) bool { return CodeOf(err) == CodeAlreadyExists }
func IsValidation(err error) bool    { return CodeOf(err) == CodeValidation }
func IsInternal(err error) bool      { return CodeOf(err) == CodeInternal }
func IsUnauthorized(err error) bool  { return CodeOf(err) == CodeUnauthorized }
func IsForbidden(err error) bool     { return CodeOf(err) == CodeForbidden }

// HTTPStatusCode maps err to a response status. Plain errors, nil and
// unknown codes map to 500.
func HTTPStatusCode(err error) int {
	if status, ok := codeStatus[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
