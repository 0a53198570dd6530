package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"guestdesk-backend/models"
	"guestdesk-backend/services"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *services.SessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := services.NewSessionStore(
		services.NewMemoryScopeStore(), services.NewMemoryScopeStore(), zap.NewNop().Sugar())

	r := gin.New()
	r.GET("/protected", RequireSession(store), func(c *gin.Context) {
		sess := Session(c)
		require.NotNil(t, sess)
		c.JSON(http.StatusOK, gin.H{"sessionId": sess.ID})
	})
	return r, store
}

func seedAuthSession(t *testing.T, store *services.SessionStore, id string) {
	t.Helper()
	require.NoError(t, store.Put(&models.StaffSession{
		ID:          id,
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
	}))
}

func TestRequireSessionBearerHeader(t *testing.T) {
	r, store := newAuthTestRouter(t)
	seedAuthSession(t, store, "s1")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer s1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "s1")
}

func TestRequireSessionXSessionIDHeader(t *testing.T) {
	r, store := newAuthTestRouter(t)
	seedAuthSession(t, store, "s2")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Session-Id", "s2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSessionMissingHeader(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrCodeUnauthorized)
}

func TestRequireSessionUnknownSession(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionExpiredSession(t *testing.T) {
	r, store := newAuthTestRouter(t)
	require.NoError(t, store.Put(&models.StaffSession{
		ID:          "stale",
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Minute),
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer stale")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
