package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quillapp/quill-api/internal/domain"
	"github.com/quillapp/quill-api/internal/platform/logger"
	"github.com/quillapp/quill-api/internal/store"
)

// PostgresTagStore implements the store.TagStore interface
// using a PostgreSQL database as the storage backend.
// Tags are read-only; the store exposes no writes.
type PostgresTagStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTagStore creates a new PostgreSQL implementation of the TagStore
// interface. If logger is nil, a default logger will be used.
func NewPostgresTagStore(db *sql.DB, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

// Ensure PostgresTagStore implements store.TagStore interface
var _ store.TagStore = (*PostgresTagStore)(nil)

// ListAll implements store.TagStore.ListAll
func (s *PostgresTagStore) ListAll(ctx context.Context) ([]*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY id`)
	if err != nil {
		log.Error("failed to query tags", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tags, err := scanTags(rows)
	if err != nil {
		log.Error("failed to scan tag rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed tags", slog.Int("count", len(tags)))
	return tags, nil
}

// FindByIDs implements store.TagStore.FindByIDs
// An empty input short-circuits to an empty result without touching the
// database; duplicate IDs collapse to one row each.
func (s *PostgresTagStore) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT id, name FROM tags WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tags by IDs",
			slog.String("error", err.Error()),
			slog.Int("id_count", len(ids)))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tags, err := scanTags(rows)
	if err != nil {
		log.Error("failed to scan tag rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found tags by IDs",
		slog.Int("requested", len(ids)),
		slog.Int("matched", len(tags)))
	return tags, nil
}

func scanTags(rows *sql.Rows) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}
	return tags, nil
}
