package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jbbaek/likelion-food/internal/cache"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionRevoked = errors.New("session has been logged out")
)

const revokedKeyPrefix = "session:revoked:"

// Claims is the payload of a session token.
type Claims struct {
	UserID   int64  `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// Identity is the logged-in user attached to a request.
type Identity struct {
	UserID    int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	SessionID string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Sessions issues and validates signed session tokens. Logged-out token ids
// are kept in the cache until the token would have expired anyway.
type Sessions struct {
	secret  []byte
	ttl     time.Duration
	revoked cache.Client
	now     func() time.Time
}

func NewSessions(secret string, ttl time.Duration, revoked cache.Client) (*Sessions, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return &Sessions{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}, nil
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue signs a new token for user.
func (s *Sessions) Issue(user *User) (string, *Identity, error) {
	if user == nil || user.ID == 0 {
		return "", nil, errors.New("cannot issue session for unsaved user")
	}

	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing session: %w", err)
	}

	return signed, identityFromClaims(&claims), nil
}

// Validate parses tokenString and rejects expired or logged-out sessions.
func (s *Sessions) Validate(ctx context.Context, tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.UserID == 0 || claims.ID == "" {
		return nil, ErrInvalidSession
	}

	_, err = s.revoked.Get(ctx, revokedKeyPrefix+claims.ID)
	switch {
	case err == nil:
		return nil, ErrSessionRevoked
	case !errors.Is(err, cache.ErrMiss):
		return nil, fmt.Errorf("checking session revocation: %w", err)
	}

	return identityFromClaims(claims), nil
}

// Revoke marks the session as logged out.
func (s *Sessions) Revoke(ctx context.Context, id *Identity) error {
	ttl := id.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Set(ctx, revokedKeyPrefix+id.SessionID, "1", ttl)
}

func identityFromClaims(c *Claims) *Identity {
	id := &Identity{
		UserID:    c.UserID,
		Username:  c.Username,
		Name:      c.Name,
		SessionID: c.ID,
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}
