package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"guestdesk-backend/models"
)

// Canonical verification status labels.
const (
	StatusVerified   = "Verified"
	StatusPending    = "Pending"
	StatusFailed     = "Failed"
	StatusProcessing = "Processing"
	StatusUnknown    = "Unknown"
)

// Canonical gender labels.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
	GenderNA     = "N/A"
)

// Numeric verification status codes as sent by the API.
var verificationStatusByCode = map[int]string{
	0: StatusPending,
	1: StatusVerified,
	2: StatusFailed,
	3: StatusProcessing,
}

// String synonyms, keyed by trimmed+lowercased input.
var verificationStatusSynonyms = map[string]string{
	"verified":    StatusVerified,
	"pending":     StatusPending,
	"failed":      StatusFailed,
	"processing":  StatusProcessing,
	"in_progress": StatusProcessing,
	"inprogress":  StatusProcessing,
	"success":     StatusVerified,
	"error":       StatusFailed,
	"rejected":    StatusFailed,
}

var genderByCode = map[string]string{
	"m":      GenderMale,
	"f":      GenderFemale,
	"o":      GenderOther,
	"male":   GenderMale,
	"female": GenderFemale,
	"other":  GenderOther,
}

// MapVerificationStatus maps a raw status value to one of the five canonical
// labels. The API sends numbers, strings, stringified numbers and nulls, so
// the lookup order is fixed: numeric table, then the string synonym table,
// then a numeric-parse fallback, then pass-through of already-canonical
// labels. Nil defaults to Pending, everything else to Unknown.
func MapVerificationStatus(raw any) string {
	if raw == nil {
		return StatusPending
	}

	switch v := raw.(type) {
	case int:
		return statusFromCode(v)
	case int64:
		return statusFromCode(int(v))
	case float64:
		return statusFromCode(int(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return statusFromCode(int(n))
		}
		return StatusUnknown
	case string:
		normalized := strings.ToLower(strings.TrimSpace(v))
		if label, ok := verificationStatusSynonyms[normalized]; ok {
			return label
		}
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			if label, ok := verificationStatusByCode[n]; ok {
				return label
			}
		}
		switch v {
		case StatusVerified, StatusPending, StatusFailed, StatusProcessing:
			return v
		}
		return StatusUnknown
	}

	return StatusUnknown
}

func statusFromCode(code int) string {
	if label, ok := verificationStatusByCode[code]; ok {
		return label
	}
	return StatusUnknown
}

// MapGender maps a raw gender code or word to a canonical label. Unmapped
// non-empty input is passed through so unexpected upstream values stay
// visible; empty input becomes "N/A".
func MapGender(raw string) string {
	if raw == "" {
		return GenderNA
	}
	if label, ok := genderByCode[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return label
	}
	return raw
}

func emptyAddress() models.Address {
	return models.Address{Country: "India", FullAddress: "N/A"}
}

// ParseAddress extracts address components from a splitAddress blob, which is
// either a JSON-encoded string or an already-decoded object. Malformed input
// yields the empty address (country defaulted to India) — never an error; a
// bad address must not sink the whole record.
func ParseAddress(raw any) models.Address {
	if raw == nil {
		return emptyAddress()
	}

	var fields map[string]any
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return emptyAddress()
		}
		if err := json.Unmarshal([]byte(v), &fields); err != nil {
			return emptyAddress()
		}
	case map[string]any:
		fields = v
	default:
		return emptyAddress()
	}

	get := func(key string) string { return stringField(fields, key) }

	city := get("Dist")
	if city == "" {
		city = get("Vtc")
	}
	country := get("Country")
	if country == "" {
		country = "India"
	}

	locality := get("Vtc")
	if locality == "" {
		locality = get("Po")
	}
	parts := []string{
		get("House"), get("Street"), get("Landmark"), locality,
		get("Subdist"), get("Dist"), get("State"), get("Pincode"),
	}
	present := parts[:0]
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	full := strings.Join(present, ", ")
	if full == "" {
		full = "N/A"
	}

	return models.Address{
		House:       get("House"),
		Street:      get("Street"),
		Landmark:    get("Landmark"),
		City:        city,
		State:       get("State"),
		PinCode:     get("Pincode"),
		Country:     country,
		FullAddress: full,
	}
}

// stringField renders a loosely-typed JSON field as a string. Pincode in
// particular arrives as either a string or a number.
func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// SplitName splits a full name into first and last. A single token is the
// first name; with more tokens the first is the first name and the rest,
// joined by spaces, the last name. An empty name yields first name "N/A".
func SplitName(fullName string) (firstName, lastName string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "N/A", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

const aadhaarPlaceholder = "XXXX-XXXX-XXXX"

// MaskAadhaar renders an Aadhaar number as XXXX-XXXX-<last4>. Inputs that
// already carry masking characters are re-grouped once cleaned to digits and
// mask chars; a bare 12-digit number has its first eight digits masked;
// anything else collapses to the fixed placeholder so no partial id leaks.
func MaskAadhaar(id string) string {
	if id == "" {
		return aadhaarPlaceholder
	}

	if strings.Contains(strings.ToLower(id), "x") {
		var clean strings.Builder
		for _, r := range id {
			if (r >= '0' && r <= '9') || r == 'x' || r == 'X' {
				clean.WriteRune(r)
			}
		}
		c := clean.String()
		if len(c) >= 12 {
			return c[:4] + "-" + c[4:8] + "-" + c[8:12]
		}
		return id
	}

	if len(id) == 12 && isDigits(id) {
		return "XXXX-XXXX-" + id[8:]
	}
	return aadhaarPlaceholder
}

// MaskPhone hides the middle digits of a phone number for display,
// keeping the first three and last four.
func MaskPhone(phone string) string {
	if phone == "" {
		return "N/A"
	}
	if len(phone) < 10 {
		return phone
	}
	return phone[:3] + "XXXXX" + phone[len(phone)-4:]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
