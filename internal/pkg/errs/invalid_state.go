package errs

import (
	"errors"
	"fmt"
)

var ErrInvalidState = errors.New("invalid state")

// InvalidStateError reports an operation that is not allowed in the current
// state of an aggregate, e.g. an illegal status transition.
type InvalidStateError struct {
	ParamName string
	State     any
	Cause     error
}

func NewInvalidStateError(paramName string, state any) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, State: state}
}

func NewInvalidStateErrorWithCause(paramName string, state any, cause error) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, State: state, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	msg := fmt.Sprintf("%s: %s is %v", ErrInvalidState, e.ParamName, e.State)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
