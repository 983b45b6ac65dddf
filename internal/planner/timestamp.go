package planner

import (
	"strconv"
	"strings"
	"time"
)

// epochMillisThreshold separates epoch seconds from epoch milliseconds: 1e12 seconds is year ~33658,
// while 1e12 milliseconds is September 2001.
const epochMillisThreshold = 1_000_000_000_000

// Layouts accepted by ParseTimestamp. Values without an offset are read as UTC.
// Fractional seconds are accepted after any seconds field.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp interprets a post or comment timestamp. It never fails loudly: anything empty or
// unparseable reports false. Every time comparison in this package goes through it.
func ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if isInteger(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		if n >= epochMillisThreshold || n <= -epochMillisThreshold {
			return time.UnixMilli(n).UTC(), true
		}
		return time.Unix(n, 0).UTC(), true
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// SortKey is the instant used to order posts and comments. Malformed timestamps sort as the Unix
// epoch, i.e. before anything real.
func SortKey(raw string) time.Time {
	if t, ok := ParseTimestamp(raw); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}

func isInteger(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
