package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/quillapp/quill-api/internal/domain"
)

// PostStore defines the interface for post and post-tag persistence.
//
// Multi-statement operations (create with tags, update with tag replacement,
// delete with tag cleanup) are orchestrated by the service layer inside a
// single transaction: it obtains a *sql.Tx via RunInTransaction and binds the
// store to it with WithTx. Every method takes whichever executor the store
// was built with; there is no implicit pool fallback.
type PostStore interface {
	// Create inserts a new post row and assigns the generated ID to post.ID.
	// Returns ErrInsertFailed if the insert touches no row, and
	// ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, post *domain.Post) error

	// List returns posts ordered newest-first by creation time, each enriched
	// with the owner's username and aggregated tag names, windowed by limit
	// and offset. The window values are passed to the driver as given.
	List(ctx context.Context, limit, offset int) ([]*domain.PostDetails, error)

	// GetByID retrieves a single post with owner username and tag names.
	// Returns ErrPostNotFound if no row matches.
	GetByID(ctx context.Context, id int64) (*domain.PostDetails, error)

	// ExistsForUser reports whether a post with the given ID exists AND is
	// owned by the given user. Callers must not distinguish "absent" from
	// "not owned"; both report false.
	ExistsForUser(ctx context.Context, id int64, userID uuid.UUID) (bool, error)

	// Update modifies the title and content of an existing post row.
	// Returns ErrUpdateFailed if no row was affected.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes the post row.
	// Returns ErrDeleteFailed if no row was affected.
	Delete(ctx context.Context, id int64) error

	// AddTags inserts one post_tags row per tag ID for the given post.
	// Returns ErrInvalidEntity if a tag or the post does not exist.
	AddTags(ctx context.Context, postID int64, tagIDs []int64) error

	// DeleteTags removes every post_tags row for the given post and returns
	// the number of rows removed. A tagless post legitimately removes zero
	// rows; interpreting that as a failure is the caller's decision.
	DeleteTags(ctx context.Context, postID int64) (int64, error)

	// WithTx returns a new PostStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) PostStore
}
