package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an application error into the taxonomy the HTTP layer
// knows how to translate.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindConflict
	KindNotFound
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, logged server-side only
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindConflict:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unavailable(message string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
