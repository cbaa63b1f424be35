// Package errors provides the error types shared by the adapter.
// They let callers tell a remote failure apart from an empty search result,
// and map failures onto HTTP responses at the server boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New is an alias for the standard library errors.New.
var New = errors.New

// Is and As are re-exported so callers need a single errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Sentinel errors.
var (
	// ErrNotFound indicates that a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPreconditionFailed indicates that an optimistic-concurrency
	// precondition was rejected by the remote store.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrUnavailable indicates that the remote store returned a server error.
	ErrUnavailable = errors.New("remote store unavailable")

	// ErrRateLimited indicates that the remote rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAPIKeyRequired indicates that an API key is required but not configured.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// NotFoundError represents a record missing from the remote store.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a non-success response from a remote API.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusConflict || e.StatusCode == http.StatusPreconditionFailed:
		return target == ErrPreconditionFailed
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrUnavailable
	case e.StatusCode == http.StatusNotFound:
		return target == ErrNotFound
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error parsing a report or a response body.
type ParseError struct {
	Format  string // "gradle", "maven", "json"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// ResourceError represents a failed operation on a remote record.
type ResourceError struct {
	Operation string // "search", "create", "update", "submit"
	Resource  string // "component", "reference", "batch"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// AuthenticationError represents an authentication failure against the remote API.
type AuthenticationError struct {
	Service string
	Method  string // "token", "bearer", "header"
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Service, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsPreconditionFailed checks if an error is a rejected optimistic-concurrency update.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}

// IsUnavailable checks if an error indicates the remote store failed server-side.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsAPIError reports whether err wraps an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapResource wraps an error as a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI wraps an error as an APIError.
func WrapAPI(service string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
