package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller may not act on the resource or tenant.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition indicates an illegal claim status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and a safe message alongside the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewConflictError returns an AppError matching ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// ResolutionKind classifies why an entity reference could not be used.
type ResolutionKind string

const (
	ResolutionNotFound       ResolutionKind = "NOT_FOUND"
	ResolutionTenantMismatch ResolutionKind = "TENANT_MISMATCH"
	ResolutionInactive       ResolutionKind = "INACTIVE"
)

// ResolutionError reports a practice, therapist or patient reference that does not
// resolve inside the active tenant. Its message never names the other tenant.
type ResolutionError struct {
	Kind   ResolutionKind
	Entity string
	ID     string
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case ResolutionTenantMismatch:
		return fmt.Sprintf("%s is not accessible in this practice", e.Entity)
	case ResolutionInactive:
		return fmt.Sprintf("%s %s is not active", e.Entity, e.ID)
	default:
		return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
	}
}

// Unwrap maps each kind onto the matching sentinel so handlers can use errors.Is.
func (e *ResolutionError) Unwrap() error {
	switch e.Kind {
	case ResolutionTenantMismatch:
		return ErrForbidden
	case ResolutionInactive:
		return ErrConflict
	default:
		return ErrNotFound
	}
}

// NewResolutionError builds a ResolutionError.
func NewResolutionError(kind ResolutionKind, entity, id string) *ResolutionError {
	return &ResolutionError{Kind: kind, Entity: entity, ID: id}
}

// PersistenceError wraps a storage failure that happened after validation passed.
// Nothing was committed, so the caller may retry with the same input.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Retriable reports whether the operation can be safely repeated.
func (e *PersistenceError) Retriable() bool {
	return true
}

// NewPersistenceError builds a PersistenceError.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// IsRetriable reports whether err carries a retriable persistence failure.
func IsRetriable(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Retriable()
}
