package utils

import (
	"fmt"

	"guestdesk-backend/models"
)

// TransformGuest maps one raw upstream record to its canonical view. Returns
// nil only for a nil input; malformed fields degrade to safe defaults via the
// normalizer instead of failing the record.
func TransformGuest(raw *models.RawGuestRecord) *models.CanonicalGuest {
	if raw == nil {
		return nil
	}

	firstName, lastName := SplitName(raw.FullName)
	address := ParseAddress(raw.SplitAddress)
	createdAt := FormatCreatedAt(raw.CreatedAt)
	status := MapVerificationStatus(raw.VerificationStatus)

	fullName := raw.FullName
	if fullName == "" {
		fullName = "-"
	}
	nationality := raw.Nationality
	if nationality == "" {
		nationality = "Indian"
	}
	countryCode := raw.PhoneCountryCode
	if countryCode == "" {
		countryCode = "91"
	}
	phone := ""
	if raw.PhoneNumber != "" {
		phone = countryCode + raw.PhoneNumber
	}
	bookingSource := raw.OTA
	if bookingSource == "" {
		bookingSource = "WALK-IN"
	}
	digiLockerRef := raw.ReferenceID
	if digiLockerRef == "" {
		digiLockerRef = "-"
	}
	deskID := raw.DeskID
	if deskID == "" {
		deskID = "-"
	}
	receptionUserID := raw.ReceptionUserID
	if receptionUserID == "" {
		receptionUserID = "-"
	}

	return &models.CanonicalGuest{
		AadhaarNumber: raw.UID,
		FirstName:     firstName,
		LastName:      lastName,
		FullName:      fullName,
		DateOfBirth:   FormatDateOfBirth(raw.DateOfBirth),
		Gender:        MapGender(raw.Gender),
		Nationality:   nationality,

		Phone:            phone,
		PhoneNumber:      raw.PhoneNumber,
		PhoneCountryCode: countryCode,
		Email:            raw.Email,

		Address:  address.FullAddress,
		City:     address.City,
		State:    address.State,
		PinCode:  address.PinCode,
		House:    address.House,
		Street:   address.Street,
		Landmark: address.Landmark,

		BookingID:       raw.BookingID,
		Date:            createdAt.Date,
		Time:            createdAt.Time,
		CheckInDateTime: createdAt.Formatted,
		BookingSource:   bookingSource,

		VerificationStatus:           status,
		ReferenceID:                  raw.ReferenceID,
		VerificationID:               raw.VerificationID,
		DigiLockerReferenceID:        digiLockerRef,
		AadhaarVerificationTimestamp: createdAt.Formatted,

		CreatedAt:            raw.CreatedAt,
		LastUpdatedTimestamp: createdAt.Formatted,
		DeskID:               deskID,
		ReceptionUserID:      receptionUserID,

		Raw: raw,
	}
}

// TransformGuests maps a batch of raw records, dropping nil entries. Order is
// preserved.
func TransformGuests(raws []*models.RawGuestRecord) []models.CanonicalGuest {
	guests := make([]models.CanonicalGuest, 0, len(raws))
	for _, raw := range raws {
		if g := TransformGuest(raw); g != nil {
			guests = append(guests, *g)
		}
	}
	return guests
}

// AgeAtVerification computes the whole years between date of birth and the
// verification timestamp, borrowing when the birthday has not yet occurred in
// the verification year. Either side missing or unparseable yields "N/A".
func AgeAtVerification(dateOfBirth, verifiedAt string) string {
	birth, ok := ParseTimestamp(dateOfBirth)
	if !ok {
		return "N/A"
	}
	verified, ok := ParseTimestamp(verifiedAt)
	if !ok {
		return "N/A"
	}

	age := verified.Year() - birth.Year()
	if verified.Month() < birth.Month() ||
		(verified.Month() == birth.Month() && verified.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d Years", age)
}
