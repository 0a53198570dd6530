package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdesk-backend/models"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func newTestAuthService(t *testing.T, handler http.HandlerFunc) (*AuthService, *SessionStore) {
	t.Helper()
	client, store := newTestClient(t, handler)
	return NewAuthService(client, store, testLogger()), store
}

func loginHandler(t *testing.T, accessToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "frontdesk@hotel.test", payload["userId"])

		resp := map[string]string{
			"accessToken":  accessToken,
			"refreshToken": "refresh-1",
			"expiresAt":    time.Now().Add(time.Hour).Format(time.RFC3339),
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestLoginDecodesTokenClaims(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{
		"tenantId":    "tenant-7",
		"propertyIds": []string{"p1", "p2"},
		roleClaimURI:  "Manager",
		"sub":         "frontdesk@hotel.test",
	})
	svc, store := newTestAuthService(t, loginHandler(t, token))

	sess, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", false)
	require.NoError(t, err)

	assert.Equal(t, models.ScopeEphemeral, sess.Scope)
	assert.Equal(t, "tenant-7", sess.TenantID)
	assert.Equal(t, []string{"p1", "p2"}, sess.PropertyIDList())
	assert.Equal(t, "Manager", sess.Role)
	assert.Equal(t, "frontdesk@hotel.test", sess.UserEmail)
	assert.Empty(t, sess.RememberedLogin)

	stored, err := store.Get(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, token, stored.AccessToken)
}

func TestLoginRememberUsesDurableScope(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{"sub": "frontdesk@hotel.test"})
	svc, store := newTestAuthService(t, loginHandler(t, token))

	sess, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", true)
	require.NoError(t, err)

	assert.Equal(t, models.ScopeDurable, sess.Scope)
	assert.Equal(t, "frontdesk@hotel.test", sess.RememberedLogin)

	stored, err := store.Durable.Get(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	stored, err = store.Ephemeral.Get(sess.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestLoginCommaSeparatedPropertyIDs(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{"propertyIds": "p1, p2 ,p3"})
	svc, _ := newTestAuthService(t, loginHandler(t, token))

	sess, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, sess.PropertyIDList())
}

func TestLoginNumericScalarPropertyID(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{"propertyIds": 42})
	svc, _ := newTestAuthService(t, loginHandler(t, token))

	sess, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, sess.PropertyIDList())
}

func TestLoginRoleFallbacks(t *testing.T) {
	// Plain "role" claim used when the WS-Federation URI claim is absent.
	token := signedTestToken(t, jwt.MapClaims{"role": "Auditor"})
	svc, _ := newTestAuthService(t, loginHandler(t, token))
	sess, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "Auditor", sess.Role)

	// No role claim at all falls back to the default.
	token = signedTestToken(t, jwt.MapClaims{"sub": "x"})
	svc, _ = newTestAuthService(t, loginHandler(t, token))
	sess, err = svc.Login(context.Background(), "frontdesk@hotel.test", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "Receptionist", sess.Role)
}

func TestLoginUndecodableTokenKeepsDefaults(t *testing.T) {
	svc, _ := newTestAuthService(t, loginHandler(t, "not-a-jwt"))

	sess, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "Receptionist", sess.Role)
	assert.Empty(t, sess.TenantID)
}

func TestLoginUpstreamRejection(t *testing.T) {
	svc, _ := newTestAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Invalid credentials"}`)
	})

	_, err := svc.Login(context.Background(), "frontdesk@hotel.test", "wrong", false)
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestLoginUpstreamRejectionFallbackMessage(t *testing.T) {
	svc, _ := newTestAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", false)
	require.Error(t, err)
	assert.Equal(t, loginFallbackMessage, err.Error())
}

func TestLoginMissingAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"refreshToken":"only"}`)
	})

	_, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", false)
	require.Error(t, err)
	assert.Equal(t, loginFallbackMessage, err.Error())
}

func TestLogoutClearsSession(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{"sub": "x"})
	svc, store := newTestAuthService(t, loginHandler(t, token))

	sess, err := svc.Login(context.Background(), "frontdesk@hotel.test", "secret", true)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(sess.ID))

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
