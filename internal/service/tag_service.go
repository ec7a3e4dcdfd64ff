package service

import (
	"context"
	"log/slog"

	"github.com/quillapp/quill-api/internal/domain"
	"github.com/quillapp/quill-api/internal/store"
)

// TagService defines the interface for tag lookups. Tags are read-only at
// the API surface; the set is seeded by migration.
type TagService interface {
	// ListAllTags returns every tag.
	ListAllTags(ctx context.Context) ([]*domain.Tag, error)
}

type tagServiceImpl struct {
	tagStore store.TagStore
	logger   *slog.Logger
}

var _ TagService = (*tagServiceImpl)(nil)

// NewTagService creates a new TagService with the given dependencies.
// Returns an error if the tag store is nil.
func NewTagService(tagStore store.TagStore, logger *slog.Logger) (TagService, error) {
	if tagStore == nil {
		return nil, domain.NewValidationError("tagStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &tagServiceImpl{
		tagStore: tagStore,
		logger:   logger.With(slog.String("component", "tag_service")),
	}, nil
}

func (s *tagServiceImpl) ListAllTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.tagStore.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tags", slog.String("error", err.Error()))
		return nil, err
	}
	return tags, nil
}
