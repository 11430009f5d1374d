package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound represents a referenced user or interest that does not exist
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation represents malformed input rejected before touching the store
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypePrecondition represents an operation invoked on a user in the wrong state
	ErrorTypePrecondition ErrorType = "precondition"
	// ErrorTypeConflict represents a uniqueness violation such as a reused email
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeStorage represents graph store failures (timeouts, connectivity, constraints)
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// NotFoundError is returned when a referenced node does not exist
type NotFoundError struct {
	*BaseError
	Kind string // user, interest
	Key  string
}

func NewNotFound(kind, key string) *NotFoundError {
	return &NotFoundError{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", kind, key), nil),
		Kind:      kind,
		Key:       key,
	}
}

// ValidationError is returned for malformed input
type ValidationError struct {
	*BaseError
	Field  string
	Reason string
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("invalid %s: %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// PreconditionError is returned when a user is not in the state an operation requires
type PreconditionError struct {
	*BaseError
	UserID string
	Reason string
}

func NewPrecondition(userID, reason string) *PreconditionError {
	return &PreconditionError{
		BaseError: NewBaseError(ErrorTypePrecondition, fmt.Sprintf("user %s: %s", userID, reason), nil),
		UserID:    userID,
		Reason:    reason,
	}
}

// ConflictError is returned when a unique key is already taken
type ConflictError struct {
	*BaseError
	Kind string
	Key  string
}

func NewConflict(kind, key string) *ConflictError {
	return &ConflictError{
		BaseError: NewBaseError(ErrorTypeConflict, fmt.Sprintf("%s already exists: %s", kind, key), nil),
		Kind:      kind,
		Key:       key,
	}
}

// StorageError wraps a graph store failure
type StorageError struct {
	*BaseError
	Operation string
}

func NewStorage(operation string, err error) *StorageError {
	return &StorageError{
		BaseError: NewBaseError(ErrorTypeStorage, fmt.Sprintf("storage operation failed: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// Helper functions

// TypeOf returns the ErrorType of the first BaseError in the chain, or "" if there is none.
func TypeOf(err error) ErrorType {
	var typed interface{ errorType() ErrorType }
	if stderrors.As(err, &typed) {
		return typed.errorType()
	}
	return ""
}

func (e *BaseError) errorType() ErrorType {
	return e.Type
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	return IsErrorType(err, ErrorTypeValidation)
}

// IsPrecondition reports whether err is a PreconditionError.
func IsPrecondition(err error) bool {
	return IsErrorType(err, ErrorTypePrecondition)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	return IsErrorType(err, ErrorTypeConflict)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	return IsErrorType(err, ErrorTypeStorage)
}

// IsRetryable checks if an error is retryable. The core never retries; callers may.
func IsRetryable(err error) bool {
	return IsStorage(err)
}
