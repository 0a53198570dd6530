package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"guestdesk-backend/models"
	"guestdesk-backend/services"
)

// SessionKey is the gin context key under which RequireSession stores the
// resolved *models.StaffSession.
const SessionKey = "staffSession"

// RequireSession resolves the panel session named by the Authorization
// bearer value (or the X-Session-Id header) and rejects the request when it
// is missing or expired.
func RequireSession(store *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sessionID(c)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "code": models.ErrCodeUnauthorized, "error": "Please login again to continue"})
			return
		}

		sess, err := store.Get(id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"success": false, "error": "session lookup failed"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "code": models.ErrCodeUnauthorized, "error": "Please login again to continue"})
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(c.GetHeader("X-Session-Id"))
}

// Session returns the session RequireSession attached, or nil on routes that
// skipped the middleware.
func Session(c *gin.Context) *models.StaffSession {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.StaffSession)
	return sess
}
