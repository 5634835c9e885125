// Package errx provides coded, typed errors that carry their HTTP mapping.
package errx

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
)

// Type classifies an error independently of the domain that raised it
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// HTTPStatus returns the default status code for an error type
func (t Type) HTTPStatus() int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
	stack []byte
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Stack returns the stack captured when the error was wrapped, if any
func (e *Error) Stack() []byte {
	return e.stack
}

// WithDetail attaches a key/value pair to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithMessage replaces the human-readable message
func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

// WithCause records the underlying error
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Is matches two errx errors by code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ToHTTPResponse renders the error body returned to API clients
func (e *Error) ToHTTPResponse() map[string]any {
	body := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	return body
}

// New creates an uncoded error of the given type
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: t.HTTPStatus(),
		Message:    message,
	}
}

// Wrap wraps err with a message and type. The result is coded by t; a wrapped
// *Error stays reachable through IsCode.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}

	var stack []byte
	var ge *goerrors.Error
	if errors.As(err, &ge) {
		stack = ge.Stack()
	} else {
		stack = goerrors.Wrap(err, 1).Stack()
	}

	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: t.HTTPStatus(),
		Message:    message,
		cause:      err,
		stack:      stack,
	}
}

// As extracts the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether any *Error in err's chain has type t
func IsType(err error, t Type) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Type == t {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsCode reports whether any *Error in err's chain has the given code
func IsCode(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == string(code) {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
