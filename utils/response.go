package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"guestdesk-backend/models"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONFetchError maps a guest-list fetch failure to its HTTP status and
// emits the code alongside the fixed message so the frontend can branch on
// it. Non-taxonomy errors collapse to a 502 UNKNOWN.
func JSONFetchError(c *gin.Context, err error) {
	var fe *models.FetchError
	if !errors.As(err, &fe) {
		fe = models.NewFetchError(models.ErrCodeUnknown, err.Error())
	}

	status := http.StatusBadGateway
	switch fe.Code {
	case models.ErrCodeNotFound:
		status = http.StatusNotFound
	case models.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case models.ErrCodeForbidden:
		status = http.StatusForbidden
	case models.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	c.JSON(status, gin.H{"success": false, "code": fe.Code, "error": fe.Message})
}
