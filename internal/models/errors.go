package models

import "fmt"

// ValidationError reports malformed or out-of-range input. User-correctable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidStateError reports an operation that is not legal in the booking's
// current lifecycle state. Not retryable.
type InvalidStateError struct {
	Operation string
	Status    BookingStatus
	Message   string
}

func (e *InvalidStateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("cannot %s booking in status %s", e.Operation, e.Status)
}

func NewInvalidStateError(operation string, status BookingStatus) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status}
}

// ConflictError reports an overlapping booking or a lost race against a
// concurrent mutation. The caller should refresh and retry.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// AuthorizationError reports a failed capability check.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// NotFoundError reports a missing record.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// TransientError wraps a store or registry timeout. Safe to retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient failure: " + e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

func NewTransientError(err error) *TransientError {
	return &TransientError{Err: err}
}
