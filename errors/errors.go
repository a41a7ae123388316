package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error carries a numeric code from ErrCode alongside the wrapped cause.
type Error struct {
	Code uint32
	Err  error
}

func (e *Error) Error() string {
	desc, ok := ErrCode[e.Code]
	if !ok {
		desc = ErrCode[ErrUnknown]
	}
	if e.Err == nil {
		return fmt.Sprintf("%s (%d)", desc, e.Code)
	}
	return fmt.Sprintf("%s (%d): %v", desc, e.Code, e.Err)
}

// Cause lets errors.Cause walk through the code wrapper.
func (e *Error) Cause() error {
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a coded error with a stack trace attached to msg.
func New(code uint32, msg string) error {
	return &Error{Code: code, Err: errors.New(msg)}
}

// Errorf is New with formatting.
func Errorf(code uint32, format string, args ...interface{}) error {
	return &Error{Code: code, Err: errors.Errorf(format, args...)}
}

// Wrap annotates err with msg and code. Wrap returns nil if err is nil.
func Wrap(code uint32, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: errors.Wrap(err, msg)}
}

// Wrapf is Wrap with formatting.
func Wrapf(code uint32, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: errors.Wrapf(err, format, args...)}
}

// CodeOf returns the outermost code found in err's chain, or ErrUnknown.
func CodeOf(err error) uint32 {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return ErrUnknown
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code uint32) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = cause.Cause()
	}
	return false
}

func IsResourceExhausted(err error) bool {
	return Is(err, ErrResourceExhausted)
}

func IsInvalidState(err error) bool {
	return Is(err, ErrInvalidState)
}
