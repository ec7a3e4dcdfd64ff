package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quillapp/quill-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))

	err := MapError(sql.ErrNoRows)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = MapError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	err = MapError(&pgconn.PgError{Code: "23503", ConstraintName: "post_tags_tag_id_fkey"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	// Unknown errors pass through unchanged
	plain := errors.New("connection reset")
	assert.Equal(t, plain, MapError(plain))

	// Wrapped pg errors are still recognized
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, MapError(wrapped), store.ErrDuplicate)
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}
