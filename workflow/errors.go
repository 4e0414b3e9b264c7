package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure so callers can map it to a transport
// status without string matching.
type Kind int

const (
	KindValidation Kind = iota + 1 // malformed input
	KindAuthorization              // actor lacks standing
	KindState                      // operation invalid for current deal status
	KindDuplicate                  // review or flag already exists
	KindStore                      // underlying persistence failure
)

// Error is a kinded workflow failure
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind, or 0 for foreign errors
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return 0
}

func validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func authorizationf(format string, args ...interface{}) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func statef(format string, args ...interface{}) error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func duplicatef(format string, args ...interface{}) error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func storeError(message string, err error) error {
	return &Error{Kind: KindStore, Message: message, Err: err}
}
