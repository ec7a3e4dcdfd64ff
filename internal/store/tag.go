package store

import (
	"context"

	"github.com/quillapp/quill-api/internal/domain"
)

// TagStore defines the read-only interface for tag lookups.
// There is no tag creation API; tags are seeded by migration.
type TagStore interface {
	// ListAll returns every tag, unfiltered and unpaginated.
	ListAll(ctx context.Context) ([]*domain.Tag, error)

	// FindByIDs returns the subset of tags whose ID is in ids, in no
	// particular order. Duplicate IDs resolve to a single row each, so the
	// result may be shorter than the input.
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error)
}
