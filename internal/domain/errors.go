package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors describing the failure kinds surfaced by the tracker.
// Use errors.Is to test for them; concrete errors wrap these.
var (
	// ErrInvalidInput indicates a malformed argument, such as a non-positive viewport span.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNetwork indicates a transport-level failure talking to an upstream service.
	ErrNetwork = errors.New("network error")

	// ErrDecode indicates that an upstream body did not match the expected schema.
	ErrDecode = errors.New("decode error")

	// ErrNotFound indicates that a direct lookup returned no record.
	ErrNotFound = errors.New("not found")
)

// UpstreamError describes a failed call to an upstream API.
// It matches its Kind through errors.Is and unwraps to the underlying cause.
type UpstreamError struct {
	// Op names the failed operation (e.g. "airlabs.flight")
	Op string

	// Kind is one of the sentinel errors above
	Kind error

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the error's kind.
func (e *UpstreamError) Is(target error) bool {
	return e.Kind == target
}

// NewNetworkError wraps a transport failure for the given operation.
func NewNetworkError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Kind: ErrNetwork, Err: err}
}

// NewDecodeError wraps a schema mismatch for the given operation.
func NewDecodeError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Kind: ErrDecode, Err: err}
}

// NewNotFoundError reports that the lookup identified by query returned nothing.
func NewNotFoundError(op, query string) *UpstreamError {
	return &UpstreamError{Op: op, Kind: ErrNotFound, Err: fmt.Errorf("no record for %q", query)}
}

// ValidationError represents a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidInput formats a message and wraps it with ErrInvalidInput.
func WrapInvalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsInvalidInput checks if the error is an invalid input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNetwork checks if the error is a network error.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsDecode checks if the error is a decode error.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsNotFound checks if the error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
