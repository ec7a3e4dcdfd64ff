package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quillapp/quill-api/internal/domain"
	"github.com/quillapp/quill-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserStore(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresUserStore(db, bcrypt.MinCost, nil), mock
}

func TestUserStore_Create(t *testing.T) {
	t.Parallel()

	s, mock := newUserStore(t)

	user, err := domain.NewUser("writer", "test@example.com", "secret123")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, "writer", "test@example.com", sqlmock.AnyArg(), user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), user))

	// The plaintext must be gone and the stored hash must verify
	assert.Empty(t, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret123")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s, mock := newUserStore(t)

	user, err := domain.NewUser("writer", "taken@example.com", "secret123")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = s.Create(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Create_InvalidUser(t *testing.T) {
	t.Parallel()

	s, mock := newUserStore(t)

	user := &domain.User{
		ID:       uuid.New(),
		Username: "ab",
		Email:    "test@example.com",
		Password: "secret123",
	}

	err := s.Create(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrUsernameTooShort)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_GetByEmail(t *testing.T) {
	t.Parallel()

	s, mock := newUserStore(t)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "hashed_password", "created_at"}).
		AddRow(id, "writer", "test@example.com", "$2a$04$hash", sampleTime)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, hashed_password, created_at")).
		WithArgs("test@example.com").
		WillReturnRows(rows)

	user, err := s.GetByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)

	assert.Equal(t, id, user.ID)
	assert.Equal(t, "writer", user.Username)
	assert.Equal(t, "$2a$04$hash", user.HashedPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_GetByEmail_NotFound(t *testing.T) {
	t.Parallel()

	s, mock := newUserStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, hashed_password, created_at")).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "hashed_password", "created_at"}))

	_, err := s.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	s, mock := newUserStore(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, hashed_password, created_at")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "hashed_password", "created_at"}))

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
