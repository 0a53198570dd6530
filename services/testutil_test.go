package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"guestdesk-backend/models"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func newTestStore() *SessionStore {
	return NewSessionStore(NewMemoryScopeStore(), NewMemoryScopeStore(), testLogger())
}

// newTestClient spins an httptest server around handler and returns a client
// pointed at it plus the backing session store.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*APIClient, *SessionStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := newTestStore()
	return NewAPIClient(srv.URL, 5*time.Second, store, testLogger()), store
}

// seedSession stores a valid ephemeral session and returns its id.
func seedSession(t *testing.T, store *SessionStore, token string) string {
	t.Helper()
	sess := &models.StaffSession{
		ID:          "sess-" + token,
		Scope:       models.ScopeEphemeral,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	if err := store.Put(sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sess.ID
}
