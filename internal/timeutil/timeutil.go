// Package timeutil parses the timestamp variants returned by the SG API.
package timeutil

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned when a value matches none of the accepted layouts.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// zoned layouts carry their own offset; naive layouts are interpreted as UTC.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999Z0700",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
	}
)

// ParseFlexible parses an ISO-8601 timestamp with a trailing Z, an explicit
// offset or no zone at all, with or without fractional seconds. A space is
// accepted in place of the T separator. The result is always in UTC.
func ParseFlexible(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	if strings.HasSuffix(s, "z") {
		s = strings.TrimSuffix(s, "z") + "Z"
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
