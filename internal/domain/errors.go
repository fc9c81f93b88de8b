package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrUnresolvableType matches any *TypeError.
	ErrUnresolvableType = errors.New("unresolvable type")

	// ErrInvalidInput matches any *InputError.
	ErrInvalidInput = errors.New("invalid resolution input")
)

// TypeError is returned by a source index when a referenced type cannot be
// classified, e.g. because a dependency is missing. The expander turns it into
// a diagnostic node; it never aborts a resolution.
type TypeError struct {
	// TypeName is the identity of the offending type, if known
	TypeName string

	// Reason is a short human readable explanation
	Reason string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	msg := "unresolvable type"
	if e.TypeName != "" {
		msg += " " + e.TypeName
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *TypeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrUnresolvableType.
func (e *TypeError) Is(target error) bool {
	return target == ErrUnresolvableType
}

// InputError is a hard failure of a resolve call: the owner type or method
// handle itself is invalid.
type InputError struct {
	// Subject is "owner" or "method"
	Subject string

	// Name of the offending declaration, if known
	Name string

	Cause error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Subject)
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *InputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
