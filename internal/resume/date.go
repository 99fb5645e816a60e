package resume

import (
	"strings"
	"time"
)

const (
	rangeSep     = " — "
	presentLabel = "Present"

	minYear = 1900
	maxYear = 3000
)

// FormatDate turns YYYY, YYYY-MM or YYYY-MM-DD into "Mon YYYY". Input it
// cannot place in a sane year range comes back unchanged. Empty input yields
// an empty string.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "-")
	y, ok := leadingInt(parts[0])
	if !ok || y == 0 || y < minYear || y > maxYear {
		return raw
	}
	m := 1
	if len(parts) > 1 {
		if m, ok = leadingInt(parts[1]); !ok {
			return raw
		}
	}
	if m < 1 {
		m = 1
	}
	// time.Date normalizes months past December into later years.
	return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// Range composes a display range from optional start and end dates.
// Neither date yields "", a start alone runs to "Present", and an end
// without a start is shown on its own.
func Range(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	s := FormatDate(start)
	e := FormatDate(end)
	switch {
	case s != "" && e == "":
		return s + rangeSep + presentLabel
	case s != "" && e != "":
		return s + rangeSep + e
	}
	return e
}

// leadingInt reads an optionally signed run of digits after leading
// whitespace, ignoring whatever follows it.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n < 1_000_000 {
			n = n*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
