package models

import "time"

// RawBooking is the booking slice of the upstream payload used by the
// bookings list view.
type RawBooking struct {
	BookingID            string `json:"bookingId"`
	OTA                  string `json:"ota"`
	PrimaryGuestFullName string `json:"primaryGuestFullName"`
	PhoneCountryCode     string `json:"phoneCountryCode"`
	PhoneNumber          string `json:"phoneNumber"`
	AdultsCount          int    `json:"adultsCount"`
	MinorsCount          int    `json:"minorsCount"`
	WindowStart          string `json:"windowStart"`
	WindowEnd            string `json:"windowEnd"`
}

// BookingSummary is the normalized row for the bookings table. WindowEnd
// doubles as the checked-in marker: a non-empty value means the stay window
// was closed, i.e. the guest completed check-in.
type BookingSummary struct {
	BookingID string    `json:"bookingId"`
	OTA       string    `json:"ota"`
	Date      time.Time `json:"date"`
	FirstName string    `json:"firstName"`
	Surname   string    `json:"surname"`
	Phone     string    `json:"phone"`
	Adults    int       `json:"adults"`
	Minors    int       `json:"minors"`
	Guests    int       `json:"guests"`
	WindowEnd string    `json:"windowEnd"`
}

// CheckedIn reports whether the booking completed check-in.
func (b BookingSummary) CheckedIn() bool { return b.WindowEnd != "" }

// Booking status filter values.
const (
	BookingStatusCheckedIn    = "checked-in"
	BookingStatusNotCheckedIn = "not-checked-in"
)

// BookingFilter holds the bookings-table text filters. Empty fields are no
// constraint; populated ones are ANDed.
type BookingFilter struct {
	Guest  string `form:"guest" json:"guest"`
	Phone  string `form:"phone" json:"phone"`
	OTA    string `form:"ota" json:"ota"`
	Status string `form:"status" json:"status"`
}
