package service

import "errors"

// Error kinds terminating a request. Handlers translate these to HTTP
// status codes; everything else surfaces as an internal error.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error pairs an error kind with the message shown to the client
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// NewError builds a client-visible error of the given kind
func NewError(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}
