package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guestdesk-backend/middleware"
	"guestdesk-backend/services"
	"guestdesk-backend/utils"
)

type PropertyController struct {
	Properties *services.PropertyService
}

func NewPropertyController(properties *services.PropertyService) *PropertyController {
	return &PropertyController{Properties: properties}
}

// GetProperty resolves the acting session's property. An explicit
// ?propertyId= overrides the session's first property id.
func (pc *PropertyController) GetProperty(c *gin.Context) {
	sess := middleware.Session(c)

	var (
		prop any
		err  error
	)
	if id := c.Query("propertyId"); id != "" {
		prop, err = pc.Properties.ByID(c.Request.Context(), sess.ID, id)
	} else {
		prop, err = pc.Properties.ForSession(c.Request.Context(), sess)
	}
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to fetch property details")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, prop)
}
