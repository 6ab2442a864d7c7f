package model

import "time"

// TimeLayout is the fixed-width timestamp format used everywhere: local
// time, no timezone marker. It matches the format already present in the
// persisted files and the sheets.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultDeadlineDays is how far out a deadline defaults when missing or
// unparseable.
const DefaultDeadlineDays = 7

func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}

// Now returns the current time already formatted for storage.
func Now() string {
	return FormatTime(time.Now())
}

// DefaultDeadline returns the formatted fallback deadline relative to now.
func DefaultDeadline(now time.Time) string {
	return FormatTime(now.Add(DefaultDeadlineDays * 24 * time.Hour))
}

// normalizeTimestamp returns s unchanged when it parses against TimeLayout,
// otherwise the supplied fallback.
func normalizeTimestamp(s, fallback string) string {
	if _, err := ParseTime(s); err != nil {
		return fallback
	}
	return s
}
