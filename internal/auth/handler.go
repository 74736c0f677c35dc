package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SessionCookie holds the signed session token.
const SessionCookie = "session"

type Handler struct {
	service      *Service
	sessions     *Sessions
	secureCookie bool
	log          logrus.FieldLogger
}

func NewHandler(service *Service, sessions *Sessions, secureCookie bool, log logrus.FieldLogger) *Handler {
	return &Handler{
		service:      service,
		sessions:     sessions,
		secureCookie: secureCookie,
		log:          log.WithField("component", "auth"),
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --------------------------------------------------
// Signup
// --------------------------------------------------
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req.Username, req.Password, req.Name)
	switch {
	case errors.Is(err, ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password and name are required"})
		return
	case errors.Is(err, ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		return
	case err != nil:
		h.log.WithError(err).Error("signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	h.log.WithField("user_id", user.ID).Info("user signed up")
	c.JSON(http.StatusCreated, gin.H{
		"message": "signup successful",
		"user":    user.Public(),
	})
}

// --------------------------------------------------
// Login
// --------------------------------------------------
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidCredentials.Error()})
		return
	case err != nil:
		h.log.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, _, err := h.sessions.Issue(user)
	if err != nil {
		h.log.WithError(err).Error("issuing session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	h.setCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user":    user.Public(),
		"token":   token,
	})
}

// --------------------------------------------------
// Logout
// --------------------------------------------------
func (h *Handler) Logout(c *gin.Context) {
	if id, ok := CurrentIdentity(c); ok {
		if err := h.sessions.Revoke(c.Request.Context(), id); err != nil {
			h.log.WithError(err).Error("revoking session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// --------------------------------------------------
// Current user
// --------------------------------------------------
func (h *Handler) Me(c *gin.Context) {
	id, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": id})
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	if h.secureCookie {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(SessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}
