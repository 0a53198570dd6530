package utils

import (
	"strings"

	"guestdesk-backend/models"
)

// NormalizeBookings maps raw upstream bookings to table rows: primary guest
// name split into first/surname, phone rendered with its country code, and
// the stay window start truncated to a calendar day.
func NormalizeBookings(raws []models.RawBooking) []models.BookingSummary {
	out := make([]models.BookingSummary, 0, len(raws))
	for _, b := range raws {
		first, surname := splitPrimaryGuestName(b.PrimaryGuestFullName)

		summary := models.BookingSummary{
			BookingID: b.BookingID,
			OTA:       b.OTA,
			FirstName: first,
			Surname:   surname,
			Phone:     "+" + b.PhoneCountryCode + " " + b.PhoneNumber,
			Adults:    b.AdultsCount,
			Minors:    b.MinorsCount,
			Guests:    b.AdultsCount + b.MinorsCount,
			WindowEnd: b.WindowEnd,
		}
		if t, ok := ParseTimestamp(b.WindowStart); ok {
			summary.Date = beginningOfDay(t)
		}
		out = append(out, summary)
	}
	return out
}

// splitPrimaryGuestName: first token is the first name, the rest the surname.
// Unlike guest identity splitting there is no N/A placeholder here; the
// bookings table shows blanks.
func splitPrimaryGuestName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// FilterBookings applies the bookings-table filters: case-insensitive
// substring on guest name, phone and OTA, plus the checked-in status toggle.
// Constraints are ANDed; the result preserves input order.
func FilterBookings(bookings []models.BookingSummary, f models.BookingFilter) []models.BookingSummary {
	guestQ := strings.ToLower(f.Guest)
	otaQ := strings.ToLower(f.OTA)

	out := make([]models.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		fullName := strings.ToLower(strings.TrimSpace(b.FirstName + " " + b.Surname))
		if guestQ != "" && !strings.Contains(fullName, guestQ) {
			continue
		}
		if f.Phone != "" && !strings.Contains(b.Phone, f.Phone) {
			continue
		}
		if otaQ != "" && !strings.Contains(strings.ToLower(b.OTA), otaQ) {
			continue
		}
		switch f.Status {
		case models.BookingStatusCheckedIn:
			if !b.CheckedIn() {
				continue
			}
		case models.BookingStatusNotCheckedIn:
			if b.CheckedIn() {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}
