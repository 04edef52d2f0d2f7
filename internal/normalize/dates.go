package normalize

import (
	"fmt"
	"time"

	"github.com/gyeh/tanshu3/internal/model"
)

// EF files carry dates as zero-padded yyyymmdd.
const dateLayout = "20060102"

// ParseDate parses an 8-digit yyyymmdd date.
// Returns ok=false for the sentinel, malformed input, or impossible dates.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != 8 || s == model.SentinelDate {
		return time.Time{}, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StayDays returns the inclusive day count between admission and discharge:
// a same-day stay is 1. ok is false when either date does not parse.
func StayDays(admission, discharge string) (int, bool) {
	a, ok := ParseDate(admission)
	if !ok {
		return 0, false
	}
	d, ok := ParseDate(discharge)
	if !ok {
		return 0, false
	}
	// Both are UTC midnights, so the difference is a whole number of days.
	return int(d.Sub(a).Hours()/24) + 1, true
}

// FormatDate renders a yyyymmdd date in the requested format.
// The sentinel and unparsable input pass through unchanged.
func FormatDate(s string, f model.DateFormat) string {
	if s == model.SentinelDate || f != model.DateSlashed {
		return s
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%04d/%02d/%02d", t.Year(), int(t.Month()), t.Day())
}
