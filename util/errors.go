package util

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation         ErrorKind = "ValidationError"
	KindInvalidCredentials ErrorKind = "InvalidCredentials"
	KindAccountDeactivated ErrorKind = "AccountDeactivated"
	KindAccountPending     ErrorKind = "AccountPending"
	KindUnauthorized       ErrorKind = "Unauthorized"
	KindForbidden          ErrorKind = "Forbidden"
	KindNotFound           ErrorKind = "NotFound"
	KindConflict           ErrorKind = "Conflict"
	KindTooManyRequests    ErrorKind = "TooManyRequests"
	KindInternal           ErrorKind = "InternalError"
)

var statusByKind = map[ErrorKind]int{
	KindValidation:         http.StatusBadRequest,
	KindInvalidCredentials: http.StatusUnauthorized,
	KindAccountDeactivated: http.StatusUnauthorized,
	KindAccountPending:     http.StatusUnauthorized,
	KindUnauthorized:       http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindNotFound:           http.StatusNotFound,
	KindConflict:           http.StatusConflict,
	KindTooManyRequests:    http.StatusTooManyRequests,
	KindInternal:           http.StatusInternalServerError,
}

// AppError is an error that is safe to show to the client.
type AppError struct {
	Kind    ErrorKind
	Message string
	// Err is the underlying cause. It is logged, never returned to clients.
	Err error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any *AppError of the same kind, so errors.Is(err, util.ErrForbidden) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Message == "" && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrValidation         = &AppError{Kind: KindValidation}
	ErrInvalidCredentials = &AppError{Kind: KindInvalidCredentials}
	ErrAccountDeactivated = &AppError{Kind: KindAccountDeactivated}
	ErrAccountPending     = &AppError{Kind: KindAccountPending}
	ErrUnauthorized       = &AppError{Kind: KindUnauthorized}
	ErrForbidden          = &AppError{Kind: KindForbidden}
	ErrNotFound           = &AppError{Kind: KindNotFound}
	ErrConflict           = &AppError{Kind: KindConflict}
	ErrTooManyRequests    = &AppError{Kind: KindTooManyRequests}
	ErrInternal           = &AppError{Kind: KindInternal}
)

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Errorf(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(message string) *AppError { return NewError(KindValidation, message) }

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: INTERNAL_SERVER_ERROR, Err: err}
}

// StatusCode maps err to an HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if code, ok := statusByKind[appErr.Kind]; ok {
			return code
		}
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text a client may see for err.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return INTERNAL_SERVER_ERROR
}
