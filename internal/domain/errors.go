package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreFailure indicates that the backing store rejected or failed an operation.
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError represents a validation error for a specific field.
// It is raised before any write is attempted, so a ValidationError always
// means zero mutations were applied.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError provides details about a not found entity.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AlreadyExistsError provides details about a duplicate entity.
type AlreadyExistsError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// StoreError wraps a failure from the backing store, identifying the operation
// that failed so the caller can decide whether a targeted retry makes sense.
type StoreError struct {
	Op    string
	Cause error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches the ErrStoreFailure sentinel.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

// MergeStep identifies one of the three ordered steps of a publisher merge.
type MergeStep string

const (
	// MergeStepRepoint re-points publications from the source to the target publisher.
	MergeStepRepoint MergeStep = "repoint"
	// MergeStepDelete removes the source publisher record.
	MergeStepDelete MergeStep = "delete"
	// MergeStepRename renames the surviving target publisher.
	MergeStepRename MergeStep = "rename"
)

// MergeError reports a failure during a specific merge step. The step tells the
// caller how far the merge got: a repoint failure means zero net change, a
// delete failure means publications were repointed but the source publisher
// still exists (safe to retry the delete alone), and a rename failure means the
// merge itself completed but the new name was not applied.
type MergeError struct {
	Step  MergeStep
	Cause error
}

// Error implements the error interface.
func (e *MergeError) Error() string {
	return fmt.Sprintf("merge step %s failed: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *MergeError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     id,
	}
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(entity, id string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Entity: entity,
		ID:     id,
	}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewStoreError creates a new StoreError.
func NewStoreError(op string, cause error) *StoreError {
	return &StoreError{
		Op:    op,
		Cause: cause,
	}
}

// NewMergeError creates a new MergeError.
func NewMergeError(step MergeStep, cause error) *MergeError {
	return &MergeError{
		Step:  step,
		Cause: cause,
	}
}
