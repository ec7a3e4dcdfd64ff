// Package service provides application-level services for managing posts and tags.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is() to check for specific conditions; the API layer maps
// them to HTTP status codes.
var (
	// ErrTagMismatch indicates that at least one requested tag ID does not
	// resolve to an existing tag (or a duplicate ID collapsed the match set).
	// API layer should map this to HTTP 400 Bad Request.
	ErrTagMismatch = errors.New("tags mismatch")

	// ErrPostCreateFailed indicates the post insert touched no row.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrPostCreateFailed = errors.New("failed to create post")

	// ErrPostUpdateFailed indicates the post update touched no row after
	// ownership had already been verified.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrPostUpdateFailed = errors.New("failed to update post")

	// ErrPostDeleteFailed indicates the post delete touched no row after
	// ownership had already been verified.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrPostDeleteFailed = errors.New("failed to delete post")

	// ErrPostTagsDeleteFailed indicates the junction-row delete during
	// DeletePost touched no row. A tagless post trips this check; that
	// behavior is inherited and deliberately preserved.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrPostTagsDeleteFailed = errors.New("failed to delete post tags")
)

// PostServiceError wraps unexpected failures from the post service with the
// operation that produced them.
type PostServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *PostServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("post service %s: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("post service %s: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PostServiceError) Unwrap() error {
	return e.Err
}

// NewPostServiceError creates a new PostServiceError.
func NewPostServiceError(operation, message string, err error) *PostServiceError {
	return &PostServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
