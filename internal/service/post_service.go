package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quillapp/quill-api/internal/domain"
	"github.com/quillapp/quill-api/internal/store"
)

// PostService defines the interface for post management operations. All
// multi-statement writes (create with tags, update with tag replacement,
// delete with tag cleanup) execute inside a single database transaction.
type PostService interface {
	// CreatePost validates the input, verifies every requested tag exists,
	// then inserts the post and its tag associations transactionally.
	// Returns ErrTagMismatch when the requested tag IDs do not all resolve,
	// domain validation errors for bad input, and the created post on success.
	CreatePost(ctx context.Context, userID uuid.UUID, title, content string, tagIDs []int64) (*domain.Post, error)

	// GetAllPosts returns a page of posts, newest first, each with the owner
	// username and aggregated tag names. Page numbers start at 1; the window
	// values are forwarded to the store as computed.
	GetAllPosts(ctx context.Context, page, limit int) ([]*domain.PostDetails, error)

	// GetPostByID returns a single post with owner username and tag names.
	// Returns store.ErrPostNotFound when no post matches.
	GetPostByID(ctx context.Context, id int64) (*domain.PostDetails, error)

	// UpdatePost replaces the title, content and tag set of a post owned by
	// the given user. Returns store.ErrPostNotFound when the post is absent
	// or owned by someone else, and ErrTagMismatch when the requested tag
	// IDs do not all resolve.
	UpdatePost(ctx context.Context, userID uuid.UUID, postID int64, title, content string, tagIDs []int64) error

	// DeletePost removes a post owned by the given user together with its
	// tag associations. Returns store.ErrPostNotFound when the post is
	// absent or owned by someone else.
	DeletePost(ctx context.Context, userID uuid.UUID, postID int64) error
}

// postServiceImpl implements the PostService interface.
type postServiceImpl struct {
	db        *sql.DB
	postStore store.PostStore
	tagStore  store.TagStore
	logger    *slog.Logger
}

// Verify interface implementation at compile time.
var _ PostService = (*postServiceImpl)(nil)

// NewPostService creates a new PostService with the given dependencies.
// Returns an error if any dependency is nil.
func NewPostService(
	db *sql.DB,
	postStore store.PostStore,
	tagStore store.TagStore,
	logger *slog.Logger,
) (PostService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if postStore == nil {
		return nil, domain.NewValidationError("postStore", "cannot be nil", domain.ErrValidation)
	}
	if tagStore == nil {
		return nil, domain.NewValidationError("tagStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &postServiceImpl{
		db:        db,
		postStore: postStore,
		tagStore:  tagStore,
		logger:    logger.With(slog.String("component", "post_service")),
	}, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, userID uuid.UUID, title, content string, tagIDs []int64) (*domain.Post, error) {
	log := s.logger.With(slog.String("user_id", userID.String()))

	post, err := domain.NewPost(userID, title, content)
	if err != nil {
		log.WarnContext(ctx, "post validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.checkTagsExist(ctx, tagIDs); err != nil {
		log.WarnContext(ctx, "tag check failed", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPostStore := s.postStore.WithTx(tx)

		if err := txPostStore.Create(ctx, post); err != nil {
			if errors.Is(err, store.ErrInsertFailed) {
				return fmt.Errorf("%w: %v", ErrPostCreateFailed, err)
			}
			return NewPostServiceError("create", "failed to insert post", err)
		}

		if err := txPostStore.AddTags(ctx, post.ID, tagIDs); err != nil {
			return NewPostServiceError("create", "failed to associate tags", err)
		}

		return nil
	})
	if err != nil {
		log.ErrorContext(ctx, "create post transaction failed", slog.String("error", err.Error()))
		return nil, err
	}

	log.InfoContext(ctx, "post created",
		slog.Int64("post_id", post.ID),
		slog.Int("tag_count", len(tagIDs)))
	return post, nil
}

func (s *postServiceImpl) GetAllPosts(ctx context.Context, page, limit int) ([]*domain.PostDetails, error) {
	offset := (page - 1) * limit

	posts, err := s.postStore.List(ctx, limit, offset)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list posts", slog.String("error", err.Error()))
		return nil, NewPostServiceError("list", "failed to list posts", err)
	}

	return posts, nil
}

func (s *postServiceImpl) GetPostByID(ctx context.Context, id int64) (*domain.PostDetails, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "failed to get post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
		return nil, NewPostServiceError("get", "failed to get post", err)
	}

	return post, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uuid.UUID, postID int64, title, content string, tagIDs []int64) error {
	log := s.logger.With(
		slog.String("user_id", userID.String()),
		slog.Int64("post_id", postID))

	if err := s.checkOwnership(ctx, postID, userID); err != nil {
		log.WarnContext(ctx, "ownership check failed", slog.String("error", err.Error()))
		return err
	}

	if err := s.checkTagsExist(ctx, tagIDs); err != nil {
		log.WarnContext(ctx, "tag check failed", slog.String("error", err.Error()))
		return err
	}

	post := &domain.Post{
		ID:      postID,
		Title:   title,
		Content: content,
		UserID:  userID,
	}
	if err := post.Validate(); err != nil {
		log.WarnContext(ctx, "post validation failed", slog.String("error", err.Error()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPostStore := s.postStore.WithTx(tx)

		if err := txPostStore.Update(ctx, post); err != nil {
			if errors.Is(err, store.ErrUpdateFailed) {
				return fmt.Errorf("%w: %v", ErrPostUpdateFailed, err)
			}
			return NewPostServiceError("update", "failed to update post", err)
		}

		// A post with no tags removes zero junction rows here; unlike
		// DeletePost, that is not treated as a failure.
		if _, err := txPostStore.DeleteTags(ctx, postID); err != nil {
			return NewPostServiceError("update", "failed to clear tags", err)
		}

		if err := txPostStore.AddTags(ctx, postID, tagIDs); err != nil {
			return NewPostServiceError("update", "failed to associate tags", err)
		}

		return nil
	})
	if err != nil {
		log.ErrorContext(ctx, "update post transaction failed", slog.String("error", err.Error()))
		return err
	}

	log.InfoContext(ctx, "post updated", slog.Int("tag_count", len(tagIDs)))
	return nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID uuid.UUID, postID int64) error {
	log := s.logger.With(
		slog.String("user_id", userID.String()),
		slog.Int64("post_id", postID))

	if err := s.checkOwnership(ctx, postID, userID); err != nil {
		log.WarnContext(ctx, "ownership check failed", slog.String("error", err.Error()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPostStore := s.postStore.WithTx(tx)

		n, err := txPostStore.DeleteTags(ctx, postID)
		if err != nil {
			return NewPostServiceError("delete", "failed to delete tags", err)
		}
		if n == 0 {
			return ErrPostTagsDeleteFailed
		}

		if err := txPostStore.Delete(ctx, postID); err != nil {
			if errors.Is(err, store.ErrDeleteFailed) {
				return fmt.Errorf("%w: %v", ErrPostDeleteFailed, err)
			}
			return NewPostServiceError("delete", "failed to delete post", err)
		}

		return nil
	})
	if err != nil {
		log.ErrorContext(ctx, "delete post transaction failed", slog.String("error", err.Error()))
		return err
	}

	log.InfoContext(ctx, "post deleted")
	return nil
}

// checkOwnership verifies the post exists and belongs to the user. Absent and
// not-owned collapse into the same store.ErrPostNotFound so responses leak
// nothing about other users' posts.
func (s *postServiceImpl) checkOwnership(ctx context.Context, postID int64, userID uuid.UUID) error {
	owned, err := s.postStore.ExistsForUser(ctx, postID, userID)
	if err != nil {
		return NewPostServiceError("ownership", "failed to check post ownership", err)
	}
	if !owned {
		return store.ErrPostNotFound
	}
	return nil
}

// checkTagsExist resolves the requested tag IDs and fails with ErrTagMismatch
// unless each one matched a row. Duplicate IDs in the request collapse to a
// single match and therefore also trip the mismatch.
func (s *postServiceImpl) checkTagsExist(ctx context.Context, tagIDs []int64) error {
	tags, err := s.tagStore.FindByIDs(ctx, tagIDs)
	if err != nil {
		return NewPostServiceError("tags", "failed to look up tags", err)
	}
	if len(tags) != len(tagIDs) {
		return ErrTagMismatch
	}
	return nil
}
