package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/quillapp/quill-api/internal/api/shared"
	"github.com/quillapp/quill-api/internal/domain"
	"github.com/quillapp/quill-api/internal/service"
	"github.com/quillapp/quill-api/internal/service/auth"
	"github.com/quillapp/quill-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrPostNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors. Duplicate email reports 400 rather than 409;
	// clients depend on that status.
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrTagMismatch),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	// Not found errors
	case errors.Is(err, store.ErrPostNotFound):
		return "Post not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	// Bad request errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrTagMismatch):
		return "Tags mismatch, Please check tags"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Internal failures with stable client-facing wording
	case errors.Is(err, service.ErrPostCreateFailed):
		return "Failed to create post"

	case errors.Is(err, service.ErrPostUpdateFailed):
		return "Failed to update post"

	case errors.Is(err, service.ErrPostTagsDeleteFailed):
		return "Failed to delete post tags"

	case errors.Is(err, service.ErrPostDeleteFailed):
		return "Failed to delete post"

	// Validation errors carry field-level detail that is safe to expose
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidID):
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
		}
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message and writes
// the failure envelope, logging the underlying error. An explicit non-empty
// message overrides the derived one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validator errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
