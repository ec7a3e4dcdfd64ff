package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quillapp/quill-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisatestsecretthatis32charslong!!"

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:     "tooshort",
			TokenLifetime: time.Hour,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("defaults lifetime to 24 hours", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret: testSecret,
		})
		require.NoError(t, err)

		impl, ok := svc.(*hmacJWTService)
		require.True(t, ok)
		assert.Equal(t, 24*time.Hour, impl.tokenLifetime)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	svc := NewTestJWTService(testSecret, time.Hour, fixedClock(now))

	token, err := svc.GenerateToken(ctx, userID, "test@example.com", "writer")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "token should have three segments")

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "writer", claims.Username)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	issuer := NewTestJWTService(testSecret, time.Hour, fixedClock(issuedAt))
	token, err := issuer.GenerateToken(ctx, userID, "test@example.com", "writer")
	require.NoError(t, err)

	// Validate from two hours in the future, past the one hour lifetime
	verifier := NewTestJWTService(testSecret, time.Hour, fixedClock(issuedAt.Add(2*time.Hour)))
	_, err = verifier.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	issuer := NewTestJWTService(testSecret, time.Hour, fixedClock(now))
	token, err := issuer.GenerateToken(ctx, userID, "test@example.com", "writer")
	require.NoError(t, err)

	verifier := NewTestJWTService("anothersecretthatisalso32charslong!!", time.Hour, fixedClock(now))
	_, err = verifier.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewTestJWTService(testSecret, time.Hour, time.Now)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
