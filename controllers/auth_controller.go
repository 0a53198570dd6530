package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"guestdesk-backend/middleware"
	"guestdesk-backend/services"
	"guestdesk-backend/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginPayload struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Login signs the user in upstream and hands back the panel session id plus
// the identifiers decoded from the access token.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	userID := strings.TrimSpace(payload.UserID)
	if userID == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "userId and password required")
		return
	}

	sess, err := ac.Auth.Login(c.Request.Context(), userID, payload.Password, payload.Remember)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"sessionId":   sess.ID,
		"scope":       sess.Scope,
		"expiresAt":   sess.ExpiresAt,
		"tenantId":    sess.TenantID,
		"propertyIds": sess.PropertyIDList(),
		"role":        sess.Role,
		"userEmail":   sess.UserEmail,
	})
}

// Session echoes the acting session so the frontend can restore state after
// a reload.
func (ac *AuthController) Session(c *gin.Context) {
	sess := middleware.Session(c)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"sessionId":       sess.ID,
		"scope":           sess.Scope,
		"expiresAt":       sess.ExpiresAt,
		"tenantId":        sess.TenantID,
		"propertyIds":     sess.PropertyIDList(),
		"role":            sess.Role,
		"userEmail":       sess.UserEmail,
		"rememberedLogin": sess.RememberedLogin,
	})
}

// Logout clears the session from both storage scopes.
func (ac *AuthController) Logout(c *gin.Context) {
	sess := middleware.Session(c)
	if err := ac.Auth.Logout(sess.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to clear session")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"loggedOut": true})
}
