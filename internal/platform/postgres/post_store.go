package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/quillapp/quill-api/internal/domain"
	"github.com/quillapp/quill-api/internal/platform/logger"
	"github.com/quillapp/quill-api/internal/store"
)

// postDetailsColumns is the SELECT list shared by List and GetByID: the post
// row, its owner's username, and the tag names aggregated as a JSON array.
// COALESCE over FILTER keeps tagless posts at an empty array instead of [null].
const postDetailsColumns = `
	p.id, p.title, p.content, p.user_id, p.created_at, u.username,
	COALESCE(json_agg(t.name ORDER BY t.id) FILTER (WHERE t.name IS NOT NULL), '[]')
`

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the
// PostStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// WithTx implements store.PostStore.WithTx
// It returns a copy of the store bound to the given transaction.
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.PostStore.Create
// It inserts the post row and assigns the generated ID to post.ID.
// Returns store.ErrInvalidEntity if the owning user does not exist, and
// store.ErrInsertFailed if the insert produces no row.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO posts (title, content, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		post.Title,
		post.Content,
		post.UserID,
		post.CreatedAt,
	).Scan(&post.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Error("post insert affected no rows",
				slog.String("user_id", post.UserID.String()))
			return store.ErrInsertFailed
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during post creation",
				slog.String("error", err.Error()),
				slog.String("user_id", post.UserID.String()))
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, post.UserID)
		}
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("user_id", post.UserID.String()))
		return MapError(err)
	}

	log.Info("post created successfully",
		slog.Int64("post_id", post.ID),
		slog.String("user_id", post.UserID.String()))
	return nil
}

// List implements store.PostStore.List
// Posts come back newest-first with owner username and tag names attached.
// Limit and offset are handed to the driver as given; out-of-range values
// surface as driver errors.
func (s *PostgresPostStore) List(ctx context.Context, limit, offset int) ([]*domain.PostDetails, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + postDetailsColumns + `
		FROM posts p
		JOIN users u ON p.user_id = u.id
		LEFT JOIN post_tags pt ON p.id = pt.post_id
		LEFT JOIN tags t ON pt.tag_id = t.id
		GROUP BY p.id, u.username
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to query posts",
			slog.String("error", err.Error()),
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var posts []*domain.PostDetails
	for rows.Next() {
		details, err := scanPostDetails(rows.Scan)
		if err != nil {
			log.Error("failed to scan post row",
				slog.String("error", err.Error()))
			return nil, err
		}
		posts = append(posts, details)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	// Return empty slice instead of nil if no posts found
	if posts == nil {
		posts = []*domain.PostDetails{}
	}

	log.Debug("listed posts", slog.Int("count", len(posts)))
	return posts, nil
}

// GetByID implements store.PostStore.GetByID
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.PostDetails, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + postDetailsColumns + `
		FROM posts p
		JOIN users u ON p.user_id = u.id
		LEFT JOIN post_tags pt ON p.id = pt.post_id
		LEFT JOIN tags t ON pt.tag_id = t.id
		WHERE p.id = $1
		GROUP BY p.id, u.username
	`

	row := s.db.QueryRowContext(ctx, query, id)
	details, err := scanPostDetails(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.Int64("post_id", id))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post by ID",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, MapError(err)
	}

	return details, nil
}

// ExistsForUser implements store.PostStore.ExistsForUser
func (s *PostgresPostStore) ExistsForUser(ctx context.Context, id int64, userID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1 AND user_id = $2)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id, userID).Scan(&exists); err != nil {
		log.Error("failed to check post ownership",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id),
			slog.String("user_id", userID.String()))
		return false, MapError(err)
	}

	return exists, nil
}

// Update implements store.PostStore.Update
// Returns store.ErrUpdateFailed if no row was affected.
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("post_id", post.ID))
		return err
	}

	query := `
		UPDATE posts
		SET title = $1, content = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, post.Title, post.Content, post.ID)
	if err != nil {
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", post.ID))
		return MapError(err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("post_id", post.ID))
		return err
	}
	if n == 0 {
		log.Error("post update affected no rows", slog.Int64("post_id", post.ID))
		return store.ErrUpdateFailed
	}

	log.Info("post updated successfully", slog.Int64("post_id", post.ID))
	return nil
}

// Delete implements store.PostStore.Delete
// Returns store.ErrDeleteFailed if no row was affected.
func (s *PostgresPostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return MapError(err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return err
	}
	if n == 0 {
		log.Error("post delete affected no rows", slog.Int64("post_id", id))
		return store.ErrDeleteFailed
	}

	log.Info("post deleted successfully", slog.Int64("post_id", id))
	return nil
}

// AddTags implements store.PostStore.AddTags
// One row per tag ID, in the order given. A violated foreign key (the post or
// a tag missing) maps to store.ErrInvalidEntity.
func (s *PostgresPostStore) AddTags(ctx context.Context, postID int64, tagIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`
	for _, tagID := range tagIDs {
		if _, err := s.db.ExecContext(ctx, query, postID, tagID); err != nil {
			if IsForeignKeyViolation(err) {
				log.Warn("foreign key violation during tag association",
					slog.Int64("post_id", postID),
					slog.Int64("tag_id", tagID))
				return fmt.Errorf("%w: tag %d", store.ErrInvalidEntity, tagID)
			}
			log.Error("failed to associate tag",
				slog.String("error", err.Error()),
				slog.Int64("post_id", postID),
				slog.Int64("tag_id", tagID))
			return MapError(err)
		}
	}

	log.Debug("tags associated",
		slog.Int64("post_id", postID),
		slog.Int("count", len(tagIDs)))
	return nil
}

// DeleteTags implements store.PostStore.DeleteTags
// It returns the number of junction rows removed; zero is not an error here.
func (s *PostgresPostStore) DeleteTags(ctx context.Context, postID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID)
	if err != nil {
		log.Error("failed to delete post tags",
			slog.String("error", err.Error()),
			slog.Int64("post_id", postID))
		return 0, MapError(err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("post_id", postID))
		return 0, err
	}

	log.Debug("post tags deleted",
		slog.Int64("post_id", postID),
		slog.Int64("count", n))
	return n, nil
}

// scanPostDetails reads one enriched post row. The tag aggregate arrives as a
// JSON array produced by json_agg.
func scanPostDetails(scan func(dest ...any) error) (*domain.PostDetails, error) {
	var details domain.PostDetails
	var tagsJSON []byte

	err := scan(
		&details.ID,
		&details.Title,
		&details.Content,
		&details.UserID,
		&details.CreatedAt,
		&details.Username,
		&tagsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &details.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tag aggregate: %w", err)
	}
	if details.Tags == nil {
		details.Tags = []string{}
	}

	return &details, nil
}
