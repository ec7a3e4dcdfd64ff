package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/quillapp/quill-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Users are immutable after registration in this scope, so there are no
// update or delete operations.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains the hashed password, never the plaintext.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains the hashed password, never the plaintext.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
