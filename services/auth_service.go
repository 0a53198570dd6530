package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"guestdesk-backend/models"
	"guestdesk-backend/utils"
)

const loginFallbackMessage = "Login failed. Please check your credentials and try again."

// roleClaimURI is the WS-Federation claim the upstream issuer uses for the
// user's role; plain "role" is the fallback.
const roleClaimURI = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

// AuthService signs front-desk users in against the upstream API and manages
// their panel sessions.
type AuthService struct {
	Client *APIClient
	Store  *SessionStore

	log *zap.SugaredLogger
}

func NewAuthService(client *APIClient, store *SessionStore, log *zap.SugaredLogger) *AuthService {
	return &AuthService{Client: client, Store: store, log: log}
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expiresAt"`
}

// Login forwards the credentials upstream and, on success, creates a panel
// session in the durable scope when remember is set, otherwise in the
// ephemeral scope. Upstream failures surface the server's message when it
// sent one, the generic fallback otherwise.
func (s *AuthService) Login(ctx context.Context, userID, password string, remember bool) (*models.StaffSession, error) {
	body, status, err := s.Client.Do(ctx, http.MethodPost, EndpointLogin, nil,
		map[string]string{"userId": userID, "password": password}, "")
	if err != nil {
		s.log.Warnw("login request failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%s", loginFallbackMessage)
	}
	if status < 200 || status >= 300 {
		msg := UpstreamMessage(body)
		if msg == "" {
			msg = loginFallbackMessage
		}
		return nil, fmt.Errorf("%s", msg)
	}

	var tokens loginResponse
	if err := json.Unmarshal(body, &tokens); err != nil || tokens.AccessToken == "" {
		s.log.Errorw("login response unusable", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%s", loginFallbackMessage)
	}

	sess := &models.StaffSession{
		ID:           uuid.NewString(),
		Scope:        models.ScopeEphemeral,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if remember {
		sess.Scope = models.ScopeDurable
		sess.RememberedLogin = userID
	}
	if t, ok := utils.ParseTimestamp(tokens.ExpiresAt); ok {
		sess.ExpiresAt = t
	}

	s.applyTokenClaims(sess, tokens.AccessToken)

	if err := s.Store.Put(sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.log.Infow("login ok", "user_id", userID, "scope", sess.Scope,
		"tenant_id", sess.TenantID, "properties", len(sess.PropertyIDList()))
	return sess, nil
}

// Session returns the valid session for id, or nil when there is none.
func (s *AuthService) Session(id string) (*models.StaffSession, error) {
	return s.Store.Get(id)
}

// Logout drops the session from both scopes.
func (s *AuthService) Logout(id string) error {
	return s.Store.Clear(id)
}

// applyTokenClaims decodes the access token without verifying its signature
// (the upstream issuer owns verification; the panel only mines identifiers)
// and fills the session's tenant, property, role and email fields. A token
// that does not decode leaves the fields at their defaults.
func (s *AuthService) applyTokenClaims(sess *models.StaffSession, accessToken string) {
	sess.Role = "Receptionist"

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		s.log.Warnw("access token did not decode, keeping defaults", "error", err)
		return
	}

	if v, ok := claims["tenantId"]; ok && v != nil {
		sess.TenantID = claimString(v)
	}
	sess.SetPropertyIDs(propertyIDsFromClaim(claims["propertyIds"]))

	if v, ok := claims[roleClaimURI]; ok {
		sess.Role = claimString(v)
	} else if v, ok := claims["role"]; ok {
		sess.Role = claimString(v)
	}
	if sess.Role == "" {
		sess.Role = "Receptionist"
	}

	if v, ok := claims["sub"]; ok {
		sess.UserEmail = claimString(v)
	}
	if sess.UserEmail == "" {
		if v, ok := claims["email"]; ok {
			sess.UserEmail = claimString(v)
		}
	}
}

// propertyIDsFromClaim accepts an array, a comma-separated string, or a
// single scalar, and always yields clean string ids.
func propertyIDsFromClaim(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		ids := make([]string, 0, len(t))
		for _, item := range t {
			if s := claimString(item); s != "" {
				ids = append(ids, s)
			}
		}
		return ids
	case string:
		parts := strings.Split(t, ",")
		ids := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				ids = append(ids, p)
			}
		}
		return ids
	default:
		if s := claimString(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

func claimString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
