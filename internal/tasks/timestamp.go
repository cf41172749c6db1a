package tasks

import (
	"errors"
	"time"
)

// Timestamp layouts accepted for due dates. TimestampLayout is also the
// on-disk text format of every timestamp column.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// ErrInvalidDate is returned when a value matches neither layout.
var ErrInvalidDate = errors.New("date must be in 'YYYY-MM-DD' or 'YYYY-MM-DD HH:MM:SS' format")

// ParseDue parses a due date given with or without a time component.
// A date-only value is moved to 23:59:59 of that day. The bool reports
// whether the input was date-only.
func ParseDue(s string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false, ErrInvalidDate
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.Local), true, nil
}

// NormalizeDue turns user input into an optional due time. Empty input
// means no due date.
func NormalizeDue(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, _, err := ParseDue(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatTimestamp renders t in the storage layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
