package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbbaek/likelion-food/internal/cache"
)

func newTestSessions(t *testing.T) *Sessions {
	t.Helper()
	s, err := NewSessions("test-secret-key-for-testing-only", time.Hour, cache.NewMemory())
	require.NoError(t, err)
	return s
}

func TestNewSessions(t *testing.T) {
	_, err := NewSessions("", time.Hour, cache.NewMemory())
	assert.Error(t, err)

	_, err = NewSessions("secret", 0, cache.NewMemory())
	assert.Error(t, err)
}

func TestIssueAndValidate(t *testing.T) {
	s := newTestSessions(t)

	token, issued, err := s.Issue(&User{ID: 7, Username: "choi", Name: "Choi"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.SessionID)

	id, err := s.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.UserID)
	assert.Equal(t, "choi", id.Username)
	assert.Equal(t, "Choi", id.Name)
	assert.Equal(t, issued.SessionID, id.SessionID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), id.ExpiresAt, 2*time.Second)
}

func TestIssue_UnsavedUser(t *testing.T) {
	s := newTestSessions(t)

	_, _, err := s.Issue(&User{Username: "ghost"})
	assert.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	s := newTestSessions(t)
	ctx := context.Background()

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Validate(ctx, "invalid_token_xyz")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewSessions("another-secret", time.Hour, cache.NewMemory())
		require.NoError(t, err)
		token, _, err := other.Issue(&User{ID: 1, Username: "a", Name: "A"})
		require.NoError(t, err)

		_, err = s.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("expired", func(t *testing.T) {
		past, err := NewSessions("test-secret-key-for-testing-only", time.Hour, cache.NewMemory())
		require.NoError(t, err)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, _, err := past.Issue(&User{ID: 1, Username: "a", Name: "A"})
		require.NoError(t, err)

		_, err = s.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		claims := Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "x",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).
			SignedString([]byte("test-secret-key-for-testing-only"))
		require.NoError(t, err)

		_, err = s.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestRevoke(t *testing.T) {
	s := newTestSessions(t)
	ctx := context.Background()

	token, _, err := s.Issue(&User{ID: 3, Username: "jung", Name: "Jung"})
	require.NoError(t, err)

	id, err := s.Validate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, id))

	_, err = s.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrSessionRevoked)

	// a fresh login is unaffected
	token2, _, err := s.Issue(&User{ID: 3, Username: "jung", Name: "Jung"})
	require.NoError(t, err)
	_, err = s.Validate(ctx, token2)
	assert.NoError(t, err)
}
