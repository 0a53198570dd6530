package models

// RawGuestRecord is the payload shape of the upstream
// HotelGuestRead/booking_guest_details endpoint. Every field is optional and
// the API is inconsistent about types (verificationStatus may arrive as a
// number, a string, or null; splitAddress may be a JSON-encoded string or an
// already-nested object), so the loose fields stay `any` until normalization.
type RawGuestRecord struct {
	FullName           string `json:"fullName"`
	DateOfBirth        string `json:"dateOfBirth"`
	Gender             string `json:"gender"`
	UID                string `json:"uid"`
	Nationality        string `json:"nationality"`
	PhoneCountryCode   string `json:"phoneCountryCode"`
	PhoneNumber        string `json:"phoneNumber"`
	Email              string `json:"email"`
	SplitAddress       any    `json:"splitAddress"`
	BookingID          string `json:"bookingId"`
	OTA                string `json:"ota"`
	VerificationStatus any    `json:"verificationStatus"`
	ReferenceID        string `json:"referenceId"`
	VerificationID     string `json:"verificationId"`
	CreatedAt          string `json:"createdAt"`
	DeskID             string `json:"deskId"`
	ReceptionUserID    string `json:"receptionUserId"`
	Image              string `json:"image"`
}

// Address is the parsed form of a raw splitAddress blob.
type Address struct {
	House       string `json:"house"`
	Street      string `json:"street"`
	Landmark    string `json:"landmark"`
	City        string `json:"city"`
	State       string `json:"state"`
	PinCode     string `json:"pinCode"`
	Country     string `json:"country"`
	FullAddress string `json:"fullAddress"`
}

// CanonicalGuest is the normalized, display-ready guest record. It is built
// once per fetch by the transformer and never mutated afterwards; a refresh
// replaces the whole list.
//
// VerificationStatus is always one of Verified/Pending/Failed/Processing/
// Unknown and Gender one of Male/Female/Other or "N/A" — never a raw code.
type CanonicalGuest struct {
	// Identity
	AadhaarNumber string `json:"aadhaarNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	FullName      string `json:"fullName"`
	DateOfBirth   string `json:"dateOfBirth"`
	Gender        string `json:"gender"`
	Nationality   string `json:"nationality"`

	// Contact
	Phone            string `json:"phone"`
	PhoneNumber      string `json:"phoneNumber"`
	PhoneCountryCode string `json:"phoneCountryCode"`
	Email            string `json:"email"`

	// Address
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	PinCode  string `json:"pinCode"`
	House    string `json:"house"`
	Street   string `json:"street"`
	Landmark string `json:"landmark"`

	// Booking
	BookingID       string `json:"bookingId"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	CheckInDateTime string `json:"checkInDateTime"`
	BookingSource   string `json:"bookingSource"`

	// Verification
	VerificationStatus           string `json:"verificationStatus"`
	ReferenceID                  string `json:"referenceId"`
	VerificationID               string `json:"verificationId"`
	DigiLockerReferenceID        string `json:"digiLockerReferenceId"`
	AadhaarVerificationTimestamp string `json:"aadhaarVerificationTimestamp"`

	// Metadata
	CreatedAt            string `json:"createdAt"`
	LastUpdatedTimestamp string `json:"lastUpdatedTimestamp"`
	DeskID               string `json:"deskId"`
	ReceptionUserID      string `json:"receptionUserId"`

	// Back-reference to the untouched upstream record for fields not
	// otherwise modeled.
	Raw *RawGuestRecord `json:"-"`
}

// ImageKey builds the composite lookup key used to attach fetched photos to
// guests during batch export. Booking id alone is not unique across guests on
// the same booking, hence the wider key.
func (g *CanonicalGuest) ImageKey() string {
	return g.BookingID + "_" + g.DigiLockerReferenceID + "_" + g.AadhaarNumber +
		"_" + g.PhoneCountryCode + "_" + g.PhoneNumber
}
