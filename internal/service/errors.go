package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service boundary failure. Only Validation and
// Transport on the primary save path are user visible; everything else
// degrades to log output.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindTransport      Kind = "transport"
	KindMalformedInput Kind = "malformed_input"
	KindReconciliation Kind = "reconciliation"
	KindNotFound       Kind = "not_found"
)

// Error is the single typed wrapper used at the service boundary. Callers
// never index into unknown error shapes beyond the kind tag and message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a service error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

func transportErr(msg string, err error) *Error {
	return &Error{Kind: KindTransport, Message: msg, Err: err}
}

func notFoundErr(msg string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Err: err}
}

func validationErr(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}
