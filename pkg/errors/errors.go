package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the different ways a browser automation step can fail
type ErrorType string

const (
	ErrorTypeTimeout     ErrorType = "timeout"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeInteraction ErrorType = "interaction"
	ErrorTypeNavigation  ErrorType = "navigation"
	ErrorTypeClosed      ErrorType = "closed"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents a failed browser automation step
type Error struct {
	Type     ErrorType
	Op       string
	Selector string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error during %s", e.Type, e.Op)
	if e.Selector != "" {
		msg += fmt.Sprintf(" (selector %s)", e.Selector)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an automation error of the given type
func New(errorType ErrorType, op, selector string, err error) *Error {
	return &Error{Type: errorType, Op: op, Selector: selector, Err: err}
}

// Timeout creates an error for a selector that did not appear in time
func Timeout(op, selector string, err error) *Error {
	return New(ErrorTypeTimeout, op, selector, err)
}

// NotFound creates an error for an element that is absent from the page
func NotFound(op, selector string) *Error {
	return New(ErrorTypeNotFound, op, selector, nil)
}

// IsAutomation reports whether err came from the browser automation layer
func IsAutomation(err error) bool {
	var autoErr *Error
	return stderrors.As(err, &autoErr)
}

// TypeOf returns the automation error type of err, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	var autoErr *Error
	if stderrors.As(err, &autoErr) {
		return autoErr.Type
	}
	return ErrorTypeUnknown
}

// IsTimeout reports whether err is an automation timeout
func IsTimeout(err error) bool {
	return TypeOf(err) == ErrorTypeTimeout
}

// IsNotFound reports whether err is an automation not-found error
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsRecoverable checks if the run can carry on after an error of this type.
// A closed browser cannot be recovered from by a keystroke or a navigation.
func IsRecoverable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeTimeout, ErrorTypeNotFound, ErrorTypeInteraction, ErrorTypeNavigation:
		return true
	case ErrorTypeClosed:
		return false
	default:
		return false
	}
}
