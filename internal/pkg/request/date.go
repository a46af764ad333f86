package request

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for booking dates. Bookings are date-only;
// time-of-day carries no meaning.
const DateLayout = "2006-01-02"

// ParseDate parses a wire date into a UTC midnight time.Time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected format %s", value, DateLayout)
	}
	return t.UTC(), nil
}

// FormatDate renders a time.Time in the wire date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
