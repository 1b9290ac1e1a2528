// ABOUTME: Time parsing for the date formats seen in trend feeds
// ABOUTME: Falls back through RFC and common feed layouts

package time

import (
	"strings"
	"time"
)

var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime returns the zero time when no layout matches
func ParseFlexibleTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseWithDefault returns def when s cannot be parsed
func ParseWithDefault(s string, def time.Time) time.Time {
	if t := ParseFlexibleTime(s); !t.IsZero() {
		return t
	}
	return def
}
