// Package errors provides custom error types for the shopfront system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the shopfront system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates that the remote source is temporarily unavailable
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrStoreClosed indicates an operation on a closed store
	ErrStoreClosed = errors.New("store closed")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// StorageError represents a durable-storage failure (read, write, or erase).
// Storage errors are logged and swallowed by the cart layer: a persistence
// failure degrades the cart to in-memory-only, it never fails the mutation.
type StorageError struct {
	Operation string // "read", "write", "erase", "open", "close"
	Key       string
	Err       error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s failed for key %s: %v", e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s failed: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(operation, key string, err error) *StorageError {
	return &StorageError{Operation: operation, Key: key, Err: err}
}

// SourceError represents a failure fetching data from the remote source.
// It carries the resource being fetched so the aggregation layer can turn
// it into a user-facing message.
type SourceError struct {
	Resource string // "categories", "products"
	Message  string
	Err      error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("source error fetching %s: %s", e.Resource, e.Message)
	}
	return fmt.Sprintf("source error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceError creates a new SourceError
func NewSourceError(resource string, err error) *SourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &SourceError{Resource: resource, Message: message, Err: err}
}

// OperationError represents a failed administrative mutation against the
// remote source. Message is the display string shown to the operator,
// wrapped as "<action>失敗: <native message>" to match the storefront's
// established failure notices.
type OperationError struct {
	Action  string // display label, e.g. "新增商品"
	Message string
	Err     error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	return e.Message
}

// Unwrap implements errors.Unwrap
func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError wrapping the backend's
// native error message under the given action label.
func NewOperationError(action string, err error) *OperationError {
	native := ""
	if err != nil {
		native = err.Error()
	}
	return &OperationError{
		Action:  action,
		Message: fmt.Sprintf("%s失敗: %s", action, native),
		Err:     err,
	}
}

// AggregationError represents a failed catalog refresh. It is surfaced to
// consumers through the client's LastError channel, never as a panic.
type AggregationError struct {
	Stage   string // "fetch", "decode", "merge"
	Message string
	Err     error
}

// Error implements the error interface
func (e *AggregationError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("aggregation failed during %s: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("aggregation failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// NewAggregationError creates a new AggregationError
func NewAggregationError(stage string, err error) *AggregationError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &AggregationError{Stage: stage, Message: message, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsSourceUnavailable checks if an error indicates source unavailability
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}
