package domain

import "errors"

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindUnauthorized
	KindNotFound
	KindUpstream
)

// Error carries a kind for transport mapping, a caller-safe message and
// the wrapped cause. The cause is logged server-side, never sent to the
// caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ErrValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func ErrUnauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "unauthorized"}
}

func ErrNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func ErrUpstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf extracts the kind from anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
