package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdesk-backend/models"
)

func sampleRawGuest() *models.RawGuestRecord {
	return &models.RawGuestRecord{
		UID:                "123456789012",
		FullName:           "Rahul Kumar Sharma",
		DateOfBirth:        "1990-05-15",
		Gender:             "M",
		PhoneNumber:        "9876543210",
		PhoneCountryCode:   "91",
		Email:              "rahul@example.com",
		SplitAddress:       `{"House":"5","Street":"Link Road","Dist":"Mumbai","State":"Maharashtra","Pincode":"400001"}`,
		BookingID:          "BK-1001",
		CreatedAt:          "2024-03-10T14:30:00Z",
		VerificationStatus: float64(1),
		OTA:                "MakeMyTrip",
		ReferenceID:        "DL-REF-77",
	}
}

func TestTransformGuest(t *testing.T) {
	g := TransformGuest(sampleRawGuest())
	require.NotNil(t, g)

	assert.Equal(t, "Rahul", g.FirstName)
	assert.Equal(t, "Kumar Sharma", g.LastName)
	assert.Equal(t, "15 May 1990", g.DateOfBirth)
	assert.Equal(t, GenderMale, g.Gender)
	assert.Equal(t, "919876543210", g.Phone)
	assert.Equal(t, "Mumbai", g.City)
	assert.Equal(t, "Maharashtra", g.State)
	assert.Equal(t, "BK-1001", g.BookingID)
	assert.Equal(t, "2024-03-10", g.Date)
	assert.Equal(t, "02:30 PM", g.Time)
	assert.Equal(t, "10 Mar 2024, 02:30 PM", g.CheckInDateTime)
	assert.Equal(t, StatusVerified, g.VerificationStatus)
	assert.Equal(t, "MakeMyTrip", g.BookingSource)
	assert.Equal(t, "DL-REF-77", g.DigiLockerReferenceID)
	require.NotNil(t, g.Raw)
	assert.Equal(t, "123456789012", g.Raw.UID)
}

func TestTransformGuestDefaults(t *testing.T) {
	g := TransformGuest(&models.RawGuestRecord{})
	require.NotNil(t, g)

	assert.Equal(t, "-", g.FullName)
	assert.Equal(t, "N/A", g.FirstName)
	assert.Equal(t, "Indian", g.Nationality)
	assert.Equal(t, "91", g.PhoneCountryCode)
	assert.Equal(t, "", g.Phone) // no phone number, no country-code-only phone
	assert.Equal(t, "WALK-IN", g.BookingSource)
	assert.Equal(t, "-", g.DigiLockerReferenceID)
	assert.Equal(t, "-", g.DeskID)
	assert.Equal(t, "-", g.ReceptionUserID)
	assert.Equal(t, "N/A", g.DateOfBirth)
	assert.Equal(t, "N/A", g.Date)
	assert.Equal(t, GenderNA, g.Gender)
	assert.Equal(t, StatusPending, g.VerificationStatus)
	assert.Equal(t, "N/A", g.Address)
	assert.Equal(t, "India", ParseAddress(nil).Country)
}

func TestTransformGuestNil(t *testing.T) {
	assert.Nil(t, TransformGuest(nil))
}

func TestTransformGuests(t *testing.T) {
	raws := []*models.RawGuestRecord{
		{FullName: "A One", BookingID: "B1"},
		nil,
		{FullName: "C Three", BookingID: "B3"},
	}

	guests := TransformGuests(raws)
	require.Len(t, guests, 2)
	assert.Equal(t, "B1", guests[0].BookingID)
	assert.Equal(t, "B3", guests[1].BookingID)
}

func TestAgeAtVerification(t *testing.T) {
	assert.Equal(t, "34 Years", AgeAtVerification("1990-05-15", "2024-06-01"))
	// Birthday not yet reached in the verification year.
	assert.Equal(t, "33 Years", AgeAtVerification("1990-05-15", "2024-03-01"))
	assert.Equal(t, "0 Years", AgeAtVerification("2024-01-01", "2024-06-01"))
	assert.Equal(t, "N/A", AgeAtVerification("", "2024-06-01"))
	assert.Equal(t, "N/A", AgeAtVerification("1990-05-15", "not a date"))
	assert.Equal(t, "N/A", AgeAtVerification("2025-01-01", "2024-01-01"))
}
