// Package datetime parses and formats the local date and date-time strings
// exchanged with the calendar UI.
package datetime

import (
	"strings"
	"time"
)

const (
	// DateLayout is the bare date form that marks an all-day value.
	DateLayout = "2006-01-02"
	// LocalMinuteLayout is the minute precision local date-time form.
	LocalMinuteLayout = "2006-01-02T15:04"

	localSecondLayout = "2006-01-02T15:04:05"
)

// DefaultDuration is added to the start when an end has to be synthesised.
const DefaultDuration = time.Hour

// FormatLocal renders t as YYYY-MM-DDTHH:MM in t's own location.
func FormatLocal(t time.Time) string {
	return t.Format(LocalMinuteLayout)
}

// IsDateOnly reports whether value is a bare YYYY-MM-DD date.
func IsDateOnly(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// Parse reads a date or date-time string. Values without an offset are
// interpreted in loc; RFC 3339 values are converted to loc. A nil loc means
// time.Local.
func Parse(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range []string{LocalMinuteLayout, localSecondLayout, DateLayout} {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, true
		}
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts.In(loc), true
	}
	return time.Time{}, false
}

// EnsureEndAfterStart returns an end value strictly later than start, using
// the process local time zone.
func EnsureEndAfterStart(start, end string) string {
	return EnsureEndAfterStartIn(start, end, time.Local)
}

// EnsureEndAfterStartIn repairs an event range in loc.
//
// When start is missing or unparsable the end is returned unchanged. When the
// end is missing, unparsable, or not after start, it is replaced by start plus
// one hour formatted with FormatLocal. Otherwise end is returned as is.
func EnsureEndAfterStartIn(start, end string, loc *time.Location) string {
	startAt, ok := Parse(start, loc)
	if !ok {
		return end
	}
	endAt, ok := Parse(end, loc)
	if !ok || !endAt.After(startAt) {
		return FormatLocal(startAt.Add(DefaultDuration))
	}
	return end
}
