package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jbbaek/likelion-food/internal/auth"
)

// SessionValidator resolves a raw session token to its user.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*auth.Identity, error)
}

// LoadSession attaches the session user when the request carries a valid
// token and lets the request through either way.
func LoadSession(sessions SessionValidator, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := resolve(c, sessions); err == nil {
			auth.SetIdentity(c, id)
		} else if !isAuthFailure(err) {
			log.WithError(err).Warn("session lookup failed")
		}
		c.Next()
	}
}

// RequireSession rejects requests without a valid session with 401.
func RequireSession(sessions SessionValidator, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolve(c, sessions)
		if err != nil {
			if !isAuthFailure(err) {
				log.WithError(err).Error("session lookup failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}

		log.WithFields(logrus.Fields{
			"user_id": id.UserID,
			"path":    c.FullPath(),
		}).Debug("session resolved")

		auth.SetIdentity(c, id)
		c.Next()
	}
}

var errNoToken = errors.New("no session token")

// resolve reads the session cookie, falling back to an Authorization bearer
// header.
func resolve(c *gin.Context, sessions SessionValidator) (*auth.Identity, error) {
	token, err := c.Cookie(auth.SessionCookie)
	if err != nil || token == "" {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return nil, errNoToken
		}
		token = parts[1]
	}
	return sessions.Validate(c.Request.Context(), token)
}

func isAuthFailure(err error) bool {
	return errors.Is(err, errNoToken) ||
		errors.Is(err, auth.ErrInvalidSession) ||
		errors.Is(err, auth.ErrSessionRevoked)
}
