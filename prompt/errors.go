package prompt

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrConversion reports text that does not parse into the target type.
	ErrConversion = errors.New("invalid input")

	// ErrTooManyAttempts is returned when a session with a retry bound
	// rejects more answers than allowed.
	ErrTooManyAttempts = errors.New("too many invalid attempts")
)

// InputError wraps a failure of the underlying input stream. It aborts the
// whole prompt chain. A closed stream surfaces as io.EOF.
type InputError struct {
	Label string
	Err   error
}

func (e *InputError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("reading input: %v", e.Err)
	}
	return fmt.Sprintf("reading input for %s: %v", e.Label, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports a type that cannot be prompted or rendered.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("prompt: unsupported type %v", e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
