package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"guestdesk-backend/middleware"
	"guestdesk-backend/models"
	"guestdesk-backend/services"
	"guestdesk-backend/utils"
)

type GuestController struct {
	Guests *services.GuestDetailsService
}

func NewGuestController(guests *services.GuestDetailsService) *GuestController {
	return &GuestController{Guests: guests}
}

// GetGuests fetches the upstream guest list, transforms it, applies the
// query-string filters and returns the canonical rows.
func (gc *GuestController) GetGuests(c *gin.Context) {
	sess := middleware.Session(c)

	guests, err := gc.Guests.Fetch(c.Request.Context(), sess.ID)
	if err != nil {
		utils.JSONFetchError(c, err)
		return
	}

	var text models.TextFilterSpec
	if err := c.ShouldBindQuery(&text); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid filter parameters")
		return
	}
	dateFilter, err := dateFilterFromQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	filtered := utils.ApplyFilters(guests, text, dateFilter)

	resp := gin.H{"guests": filtered, "count": len(filtered), "total": len(guests)}
	if dateFilter != nil {
		resp["dateFilter"] = utils.DescribeDateFilter(*dateFilter)
	}
	utils.JSONSuccess(c, http.StatusOK, resp)
}

// GetBookings serves the normalized bookings table.
func (gc *GuestController) GetBookings(c *gin.Context) {
	sess := middleware.Session(c)

	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid filter parameters")
		return
	}

	bookings, err := gc.Guests.FetchBookings(c.Request.Context(), sess.ID, filter)
	if err != nil {
		utils.JSONFetchError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// dateFilterFromQuery assembles the optional date condition from query
// params. No dateCondition param means no date filter.
func dateFilterFromQuery(c *gin.Context) (*models.DateFilterSpec, error) {
	condition := c.Query("dateCondition")
	if condition == "" {
		return nil, nil
	}

	spec := &models.DateFilterSpec{Condition: models.DateCondition(condition)}

	parseDate := func(param string) (time.Time, bool, error) {
		raw := c.Query(param)
		if raw == "" {
			return time.Time{}, false, nil
		}
		t, ok := utils.ParseTimestamp(raw)
		if !ok {
			return time.Time{}, false, fmt.Errorf("invalid %s", param)
		}
		return t, true, nil
	}

	var (
		hasSelected, hasStart, hasEnd bool
		err                           error
	)
	if spec.SelectedDate, hasSelected, err = parseDate("selectedDate"); err != nil {
		return nil, err
	}
	if spec.StartDate, hasStart, err = parseDate("startDate"); err != nil {
		return nil, err
	}
	if spec.EndDate, hasEnd, err = parseDate("endDate"); err != nil {
		return nil, err
	}

	if raw := c.Query("value"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, fmt.Errorf("invalid value")
		}
		spec.Value = n
	}
	spec.TimeUnit = c.DefaultQuery("timeUnit", models.UnitDays)

	switch spec.Condition {
	case models.CondBetween:
		if !hasStart || !hasEnd {
			return nil, fmt.Errorf("startDate and endDate required for %q", spec.Condition)
		}
	case models.CondInLast:
		if spec.Value <= 0 {
			return nil, fmt.Errorf("positive value required for %q", spec.Condition)
		}
	default:
		if !hasSelected {
			return nil, fmt.Errorf("selectedDate required for %q", spec.Condition)
		}
	}

	return spec, nil
}
