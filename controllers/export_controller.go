package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guestdesk-backend/models"
	"guestdesk-backend/services"
	"guestdesk-backend/utils"
)

// guestTableColumns is the panel's fixed export column set, in display
// order. Labels are printed verbatim.
var guestTableColumns = []utils.ExportColumn{
	{Key: "checkInDate", Label: "Check-in Date"},
	{Key: "firstName", Label: "First Name"},
	{Key: "lastName", Label: "Surname"},
	{Key: "bookingId", Label: "Booking ID"},
	{Key: "maskedAadhaar", Label: "Aadhaar Number"},
	{Key: "city", Label: "City"},
	{Key: "state", Label: "State"},
	{Key: "verificationStatus", Label: "Verification Status"},
}

type ExportController struct {
	Exports *services.ExportService
}

func NewExportController(exports *services.ExportService) *ExportController {
	return &ExportController{Exports: exports}
}

type tabularExportPayload struct {
	Format string                  `json:"format"`
	Guests []models.CanonicalGuest `json:"guests"`
}

type detailExportPayload struct {
	Guests []models.CanonicalGuest `json:"guests"`
}

// ExportTable streams the flat guest table as PDF or Excel. The rows are the
// guests the panel currently displays, in display order.
func (ec *ExportController) ExportTable(c *gin.Context) {
	var payload tabularExportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.Format != "pdf" && payload.Format != "excel" {
		utils.JSONError(c, http.StatusBadRequest, "format must be pdf or excel")
		return
	}

	rows := make([]map[string]string, 0, len(payload.Guests))
	for i := range payload.Guests {
		g := &payload.Guests[i]
		rows = append(rows, map[string]string{
			"checkInDate":        utils.FormatShortDate(g.Date),
			"firstName":          g.FirstName,
			"lastName":           g.LastName,
			"bookingId":          g.BookingID,
			"maskedAadhaar":      utils.MaskAadhaar(g.AadhaarNumber),
			"city":               g.City,
			"state":              g.State,
			"verificationStatus": g.VerificationStatus,
		})
	}

	filename, data, err := ec.Exports.ExportTable(payload.Format, "Guest Details", guestTableColumns, rows)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Error generating export. Please try again.")
		return
	}

	contentType := "application/pdf"
	if payload.Format == "excel" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// ExportDetails streams the one-page-per-guest detail report for the
// selected guests, in selection order.
func (ec *ExportController) ExportDetails(c *gin.Context) {
	var payload detailExportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(payload.Guests) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "no guests selected")
		return
	}

	filename, data, err := ec.Exports.ExportGuestDetails(c.Request.Context(), payload.Guests)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Error generating PDF. Please try again.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
