// Package apperror defines the classified error values shared by the
// lifecycle services and translated to HTTP statuses by the handlers.
// Repositories surface storage errors as-is; services wrap expected
// conditions in one of these kinds so the boundary can map them
// uniformly, the way sentinel errors are translated elsewhere.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAlreadyExists
	KindCapacityExceeded
	KindInvalidArgument
	KindValidation
	KindUnauthorized
	KindAccessDenied
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func AlreadyExistsf(format string, args ...interface{}) *Error {
	return newf(KindAlreadyExists, format, args...)
}

func CapacityExceededf(format string, args ...interface{}) *Error {
	return newf(KindCapacityExceeded, format, args...)
}

func InvalidArgumentf(format string, args ...interface{}) *Error {
	return newf(KindInvalidArgument, format, args...)
}

func Validationf(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return newf(KindUnauthorized, format, args...)
}

func AccessDeniedf(format string, args ...interface{}) *Error {
	return newf(KindAccessDenied, format, args...)
}

// Internal wraps an unexpected failure. The wrapped error is logged by
// the boundary but never exposed to the caller.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf classifies any error: *Error yields its kind, everything else
// is treated as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
