package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"guestdesk-backend/models"
)

// ApplyFilters applies the text constraints and the optional date condition
// to a canonical guest list. The filter is stable: survivors keep their input
// order, and with no constraints at all the input slice is returned as-is.
func ApplyFilters(guests []models.CanonicalGuest, text models.TextFilterSpec, date *models.DateFilterSpec) []models.CanonicalGuest {
	if text.Empty() && date == nil {
		return guests
	}

	out := make([]models.CanonicalGuest, 0, len(guests))
	for _, g := range guests {
		if !matchesText(&g, text) {
			continue
		}
		if date != nil && !matchesDate(&g, date) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesText(g *models.CanonicalGuest, text models.TextFilterSpec) bool {
	if q := strings.ToLower(text.Name); q != "" {
		if !strings.Contains(strings.ToLower(g.FirstName), q) &&
			!strings.Contains(strings.ToLower(g.LastName), q) &&
			!strings.Contains(strings.ToLower(g.FullName), q) {
			return false
		}
	}
	if q := strings.ToLower(text.BookingID); q != "" {
		if !strings.Contains(strings.ToLower(g.BookingID), q) {
			return false
		}
	}
	if q := strings.ToLower(text.City); q != "" {
		if !strings.Contains(strings.ToLower(g.City), q) {
			return false
		}
	}
	if q := strings.ToLower(text.State); q != "" {
		if !strings.Contains(strings.ToLower(g.State), q) {
			return false
		}
	}
	return true
}

// matchesDate evaluates one date condition at calendar-day granularity.
// A guest whose stored date does not parse never matches an active filter.
func matchesDate(g *models.CanonicalGuest, spec *models.DateFilterSpec) bool {
	t, ok := ParseTimestamp(g.Date)
	if !ok {
		return false
	}
	day := beginningOfDay(t)

	switch spec.Condition {
	case models.CondEqual:
		return day.Equal(beginningOfDay(spec.SelectedDate))
	case models.CondAfter:
		return day.After(beginningOfDay(spec.SelectedDate))
	case models.CondOnOrAfter:
		return !day.Before(beginningOfDay(spec.SelectedDate))
	case models.CondBefore:
		return day.Before(beginningOfDay(spec.SelectedDate))
	case models.CondBeforeOrOn:
		return !day.After(beginningOfDay(spec.SelectedDate))
	case models.CondBetween:
		start := beginningOfDay(spec.StartDate)
		end := beginningOfDay(spec.EndDate)
		return !day.Before(start) && !day.After(end)
	case models.CondInLast:
		today := beginningOfDay(spec.Now)
		if spec.Now.IsZero() {
			today = beginningOfDay(time.Now())
		}
		cutoff := beginningOfDay(subtractUnits(today, spec.Value, spec.TimeUnit))
		return !day.Before(cutoff) && !day.After(today)
	default:
		// Unrecognized conditions fall back to day equality, the panel's
		// historical default branch.
		return day.Equal(beginningOfDay(spec.SelectedDate))
	}
}

// subtractUnits steps back value*unit from t. Hours are honored when
// subtracting, but the caller compares at day granularity regardless; that
// coarseness is the documented behavior of the "in the last" condition.
func subtractUnits(t time.Time, value int, unit string) time.Time {
	switch strings.TrimSuffix(strings.ToLower(unit), "s") + "s" {
	case models.UnitMonths:
		return t.AddDate(0, -value, 0)
	case models.UnitHours:
		return t.Add(-time.Duration(value) * time.Hour)
	default:
		return t.AddDate(0, 0, -value)
	}
}

func beginningOfDay(t time.Time) time.Time {
	return now.New(t).BeginningOfDay()
}

// DescribeDateFilter renders the one-line summary shown next to an active
// date filter, e.g. `is between 01 Jan 24 and 31 Jan 24`.
func DescribeDateFilter(spec models.DateFilterSpec) string {
	switch spec.Condition {
	case models.CondInLast:
		return fmt.Sprintf("%s %d %s", spec.Condition, spec.Value, spec.TimeUnit)
	case models.CondBetween:
		return fmt.Sprintf("%s %s and %s", spec.Condition,
			spec.StartDate.Format("02 Jan 06"), spec.EndDate.Format("02 Jan 06"))
	default:
		return fmt.Sprintf("%s %s", spec.Condition, spec.SelectedDate.Format("02 Jan 06"))
	}
}
