package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Display layouts used across the panel.
const (
	layoutDOB      = "02 Jan 2006"
	layoutShort    = "02 Jan 06"
	layoutDay      = "2006-01-02"
	layoutClock    = "03:04 PM"
	layoutDateTime = "02 Jan 2006, 03:04 PM"
)

// ParseTimestamp parses the loosely-formatted date strings the upstream API
// emits (ISO with and without zone, slash dates, unix-ish forms).
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDateOfBirth renders a raw date-of-birth as "02 Jan 2006", or "N/A"
// when missing or unparseable.
func FormatDateOfBirth(raw string) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return "N/A"
	}
	return t.Format(layoutDOB)
}

// CreatedAtParts is a raw timestamp expanded into the three renderings the
// table and the detail report need.
type CreatedAtParts struct {
	Date      string // 2006-01-02
	Time      string // 03:04 PM
	Formatted string // 02 Jan 2006, 03:04 PM
}

// FormatCreatedAt expands a raw timestamp; every part degrades to "N/A" when
// the input is missing or unparseable.
func FormatCreatedAt(raw string) CreatedAtParts {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return CreatedAtParts{Date: "N/A", Time: "N/A", Formatted: "N/A"}
	}
	return CreatedAtParts{
		Date:      t.Format(layoutDay),
		Time:      t.Format(layoutClock),
		Formatted: t.Format(layoutDateTime),
	}
}

// FormatShortDate renders a stored day string ("2006-01-02") as "02 Jan 06"
// for table cells and exports. Unparseable input is returned empty.
func FormatShortDate(raw string) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return ""
	}
	return t.Format(layoutShort)
}

// FormatHeaderDate renders the panel's header date, e.g. "Monday / 02 Jan 06".
func FormatHeaderDate(t time.Time) string {
	return t.Format("Monday") + " / " + t.Format(layoutShort)
}

// FormatPhone pretty-prints Indian phone numbers: 12-digit numbers starting
// with 91 become "+91-XXXXX-XXXXX", bare 10-digit numbers "XXXXX-XXXXX".
// Anything else is returned as-is.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	if len(d) == 12 && strings.HasPrefix(d, "91") {
		return "+91-" + d[2:7] + "-" + d[7:]
	}
	if len(d) == 10 {
		return d[:5] + "-" + d[5:]
	}
	return phone
}

// FormatGuests renders a guest count line like "2 Adults, 1 Minor".
func FormatGuests(adults, minors int) string {
	s := fmt.Sprintf("%d %s", adults, pluralize(adults, "Adult"))
	if minors > 0 {
		s += fmt.Sprintf(", %d %s", minors, pluralize(minors, "Minor"))
	}
	return s
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
