// Package rrrerr implements the two error shapes spec'd in §7: ordinary
// errors the caller handles (bad configuration, bad mapping string) and
// fatal errors that mean the generation run must abort the process
// (device failure, a walk exceeding MaxSetSize). It is grounded on
// junjiewwang-perf-analysis's pkg/errors — a small Code+Message+wrapped-err
// type with errors.Is/As support — since that hand-rolled shape is the
// retrieved pack's own precedent and no third-party error-taxonomy
// library appears anywhere in it.
package rrrerr

import (
	"errors"
	"fmt"
)

// Code classifies an Error for programmatic handling.
type Code string

const (
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeDeviceFailure  Code = "DEVICE_FAILURE"
	CodeSetOverflow    Code = "SET_OVERFLOW"
)

// Error is an application error carrying a Code and an optional wrapped
// cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors by Code, the same convention perf-analysis's AppError
// uses.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates an Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error that wraps an existing error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// FatalError marks an Error as one that, per spec §7, must abort the
// generation process rather than be returned to a caller that might
// retry or ignore it.
type FatalError struct {
	*Error
}

// Fatal creates a FatalError with no wrapped cause.
func Fatal(code Code, message string) *FatalError {
	return &FatalError{Error: New(code, message)}
}

// WrapFatal creates a FatalError wrapping an existing error.
func WrapFatal(code Code, message string, err error) *FatalError {
	return &FatalError{Error: Wrap(code, message, err)}
}

// IsFatal reports whether err is (or wraps) a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// GetCode extracts the Code from err, or the empty Code "" if err
// doesn't carry one.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
