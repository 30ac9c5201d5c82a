// Package apperr defines the error taxonomy shared by the application
// operations. Handlers inspect these with errors.As to choose a response.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       any
}

// Error implements error.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// AuthorizationError reports that the acting session may not touch a resource.
// Reason is for logs only and never rendered.
type AuthorizationError struct {
	Reason string
}

// Error implements error.
func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

// IdentifierFormatError reports keypad input outside the accepted bounds.
type IdentifierFormatError struct {
	Raw string
}

// Error implements error.
func (e *IdentifierFormatError) Error() string {
	return fmt.Sprintf("identifier %q is not a valid client ID", e.Raw)
}

// Validation is shorthand for a *ValidationError.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFound is shorthand for a *NotFoundError.
func NotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// Unauthorized is shorthand for an *AuthorizationError.
func Unauthorized(reason string) error {
	return &AuthorizationError{Reason: reason}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUnauthorized reports whether err wraps an *AuthorizationError.
func IsUnauthorized(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// IsIdentifierFormat reports whether err wraps an *IdentifierFormatError.
func IsIdentifierFormat(err error) bool {
	var ie *IdentifierFormatError
	return errors.As(err, &ie)
}

// UserMessage returns text safe to show in a form for recoverable errors.
// It returns "" for errors that must not be echoed back.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var ie *IdentifierFormatError
	if errors.As(err, &ie) {
		return "invalid client ID"
	}
	return ""
}
