package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbbaek/likelion-food/internal/cache"
	"github.com/jbbaek/likelion-food/internal/logging"
)

func setupHandler(t *testing.T) (*gin.Engine, *Sessions) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions, err := NewSessions("handler-secret", time.Hour, cache.NewMemory())
	require.NoError(t, err)

	h := NewHandler(NewService(NewInMemoryUserRepository()), sessions, false, logging.Discard())

	// resolves the bearer token the way the session middleware does
	withSession := func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if len(raw) > len("Bearer ") {
			if id, err := sessions.Validate(c.Request.Context(), raw[len("Bearer "):]); err == nil {
				SetIdentity(c, id)
			}
		}
	}

	r := gin.New()
	r.POST("/api/signup", h.Signup)
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", withSession, h.Logout)
	r.GET("/api/me", withSession, h.Me)
	return r, sessions
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupHandler(t *testing.T) {
	r, _ := setupHandler(t)

	w := postJSON(r, "/api/signup", gin.H{"username": "kim", "password": "pw", "name": "Kim"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "kim", resp.User.Username)
	assert.NotContains(t, w.Body.String(), "password")

	w = postJSON(r, "/api/signup", gin.H{"username": "kim", "password": "pw", "name": "Kim"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/api/signup", gin.H{"username": "lee"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginLogoutFlow(t *testing.T) {
	r, _ := setupHandler(t)

	postJSON(r, "/api/signup", gin.H{"username": "kim", "password": "pw", "name": "Kim"})

	w := postJSON(r, "/api/login", gin.H{"username": "kim", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/login", gin.H{"username": "kim", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	cookie := w.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Equal(t, SessionCookie, cookie[0].Name)
	assert.True(t, cookie[0].HttpOnly)

	me := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+resp.Token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w = me()
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"kim"`)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, me().Code)
}
