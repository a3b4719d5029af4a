package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")

	ErrNotFound          = errors.New("not found")
	ErrCandidateNotFound = fmt.Errorf("candidate %w", ErrNotFound)
	ErrJobNotFound       = fmt.Errorf("job %w", ErrNotFound)

	ErrInfrastructure = errors.New("infrastructure unavailable")
)

// ValidationError reports a rejected input field. Nothing is persisted when
// one is returned.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return "invalid " + e.Field + ": " + e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InfrastructureError wraps a persistence or cache failure. Callers may retry.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Op + ": " + ErrInfrastructure.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *InfrastructureError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *InfrastructureError) Is(target error) bool {
	return target == ErrInfrastructure
}

func (e *InfrastructureError) Retryable() bool {
	return true
}

func newInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}
